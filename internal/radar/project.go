// Package radar projects a score table onto the geometry of a radar
// (spider) chart. Projection is pure; rendering lives in svg.go and in the
// terminal UI components.
package radar

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

// ErrNoCategories is returned when the score table has nothing to plot.
var ErrNoCategories = errors.New("radar: no categories to project")

// Config controls the chart dimensions.
type Config struct {
	Size        float64 // width and height of the square canvas
	Margin      float64 // space between the outer ring and the canvas edge
	LabelOffset float64 // distance of labels beyond the outer ring
	Levels      []int   // concentric reference rings
	MaxScore    int     // score that maps to the outer ring
}

// DefaultConfig returns the standard 250px chart with four rings.
func DefaultConfig() Config {
	return Config{
		Size:        250,
		Margin:      45,
		LabelOffset: 20,
		Levels:      []int{1, 2, 3, 4},
		MaxScore:    talent.CategorySize * talent.MaxOption,
	}
}

// ConfigFor returns DefaultConfig scaled to the variant's highest category
// total.
func ConfigFor(v talent.Variant) Config {
	cfg := DefaultConfig()
	if top := talent.MaxScore(v); top > 1 {
		cfg.MaxScore = top
	}
	return cfg
}

// Radius returns the outer ring radius.
func (c Config) Radius() float64 {
	return c.Size/2 - c.Margin
}

// Validate checks that the config describes a drawable chart.
func (c Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("radar: size must be positive, got %g", c.Size)
	case c.Radius() <= 0:
		return fmt.Errorf("radar: margin %g leaves no radius at size %g", c.Margin, c.Size)
	case c.MaxScore <= 1:
		return fmt.Errorf("radar: max score must be greater than 1, got %d", c.MaxScore)
	case len(c.Levels) == 0:
		return errors.New("radar: at least one ring level is required")
	}
	for _, l := range c.Levels {
		if l <= 0 {
			return fmt.Errorf("radar: ring levels must be positive, got %d", l)
		}
	}
	return nil
}

// Point is a canvas coordinate. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is one concentric reference polygon.
type Ring struct {
	Level    int     `json:"level"`
	Fraction float64 `json:"fraction"`
	Points   []Point `json:"points"`
}

// Vertex is the plotted data point of one category.
type Vertex struct {
	Category talent.Category `json:"category"`
	Score    int             `json:"score"`
	Fraction float64         `json:"fraction"`
	Point
}

// Label is the text anchor placed outside the outer ring.
type Label struct {
	Category talent.Category `json:"category"`
	Text     string          `json:"text"`
	Point
}

// Geometry is the fully computed chart.
type Geometry struct {
	Size       float64           `json:"size"`
	Center     Point             `json:"center"`
	Radius     float64           `json:"radius"`
	AngleSlice float64           `json:"angle_slice"`
	Categories []talent.Category `json:"categories"`
	Rings      []Ring            `json:"rings"`
	Axes       []Point           `json:"axes"`
	Vertices   []Vertex          `json:"vertices"`
	Labels     []Label           `json:"labels"`
}

// Angle returns the axis angle in radians for the i-th category. The first
// axis points straight up.
func (g *Geometry) Angle(i int) float64 {
	return float64(i)*g.AngleSlice - math.Pi/2
}

// At returns the point at fraction f of the radius along axis i.
func (g *Geometry) At(i int, f float64) Point {
	a := g.Angle(i)
	return Point{
		X: g.Center.X + g.Radius*math.Cos(a)*f,
		Y: g.Center.Y + g.Radius*math.Sin(a)*f,
	}
}

// LabelText formats a category label, e.g. "A（14分）".
func LabelText(c talent.Category, score int) string {
	return fmt.Sprintf("%s（%d分）", c, score)
}

// Project computes the chart geometry for the present categories of scores,
// in canonical category order.
func Project(scores scoring.ScoreTable, cfg Config) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cats := scores.Categories()
	if len(cats) == 0 {
		return nil, ErrNoCategories
	}

	n := len(cats)
	g := &Geometry{
		Size:       cfg.Size,
		Center:     Point{X: cfg.Size / 2, Y: cfg.Size / 2},
		Radius:     cfg.Radius(),
		AngleSlice: 2 * math.Pi / float64(n),
		Categories: cats,
	}

	top := 0
	for _, l := range cfg.Levels {
		top = max(top, l)
	}
	for _, level := range cfg.Levels {
		ring := Ring{Level: level, Fraction: float64(level) / float64(top)}
		for j := range cats {
			ring.Points = append(ring.Points, g.At(j, ring.Fraction))
		}
		g.Rings = append(g.Rings, ring)
	}
	// Outermost first so smaller rings draw on top.
	sort.SliceStable(g.Rings, func(i, j int) bool {
		return g.Rings[i].Fraction > g.Rings[j].Fraction
	})

	labelRadius := g.Radius + cfg.LabelOffset
	for i, c := range cats {
		score := scores[c]
		f := float64(score-1) / float64(cfg.MaxScore-1)

		g.Axes = append(g.Axes, g.At(i, 1))
		g.Vertices = append(g.Vertices, Vertex{
			Category: c,
			Score:    score,
			Fraction: f,
			Point:    g.At(i, f),
		})

		a := g.Angle(i)
		g.Labels = append(g.Labels, Label{
			Category: c,
			Text:     LabelText(c, score),
			Point: Point{
				X: g.Center.X + labelRadius*math.Cos(a),
				Y: g.Center.Y + labelRadius*math.Sin(a),
			},
		})
	}
	return g, nil
}
