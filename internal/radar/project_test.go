package radar

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

const eps = 1e-9

func uniform(score int) scoring.ScoreTable {
	t := scoring.ScoreTable{}
	for _, c := range talent.AllCategories() {
		t[c] = score
	}
	return t
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestProject_EmptyScores(t *testing.T) {
	g, err := Project(scoring.ScoreTable{}, DefaultConfig())
	assert.Nil(t, g)
	assert.True(t, errors.Is(err, ErrNoCategories))
}

func TestProject_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"margin too large", func(c *Config) { c.Margin = 200 }},
		{"max score one", func(c *Config) { c.MaxScore = 1 }},
		{"no levels", func(c *Config) { c.Levels = nil }},
		{"negative level", func(c *Config) { c.Levels = []int{1, -2} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(&cfg)
			_, err := Project(uniform(10), cfg)
			assert.Error(t, err)
		})
	}
}

func TestProject_DefaultDimensions(t *testing.T) {
	g, err := Project(uniform(12), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, Point{X: 125, Y: 125}, g.Center)
	assert.InDelta(t, 80, g.Radius, eps)
	assert.InDelta(t, 2*math.Pi/10, g.AngleSlice, eps)
	assert.Equal(t, talent.AllCategories(), g.Categories)
	assert.Len(t, g.Axes, 10)
	assert.Len(t, g.Vertices, 10)
	assert.Len(t, g.Labels, 10)
}

func TestProject_RegularDecagon(t *testing.T) {
	g, err := Project(uniform(15), DefaultConfig())
	require.NoError(t, err)

	first := g.Vertices[0]
	assert.InDelta(t, g.Center.X, first.X, eps, "first vertex should sit on the vertical axis")
	assert.Less(t, first.Y, g.Center.Y, "first vertex should point up")

	r0 := dist(g.Center, first.Point)
	for i, v := range g.Vertices {
		assert.InDelta(t, r0, dist(g.Center, v.Point), 1e-6, "vertex %d radius", i)

		next := g.Vertices[(i+1)%len(g.Vertices)]
		a1 := math.Atan2(v.Y-g.Center.Y, v.X-g.Center.X)
		a2 := math.Atan2(next.Y-g.Center.Y, next.X-g.Center.X)
		delta := math.Mod(a2-a1+2*math.Pi, 2*math.Pi)
		assert.InDelta(t, 36.0, delta*180/math.Pi, 1e-6, "angle between vertex %d and %d", i, i+1)
	}
}

func TestProject_VertexFraction(t *testing.T) {
	scores := scoring.ScoreTable{
		talent.CategoryA: 1,
		talent.CategoryB: 20,
		talent.CategoryC: 14,
	}
	g, err := Project(scores, DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 0, g.Vertices[0].Fraction, eps)
	assert.InDelta(t, g.Center.X, g.Vertices[0].X, eps)
	assert.InDelta(t, g.Center.Y, g.Vertices[0].Y, eps)

	assert.InDelta(t, 1, g.Vertices[1].Fraction, eps)
	assert.InDelta(t, g.Axes[1].X, g.Vertices[1].X, eps)
	assert.InDelta(t, g.Axes[1].Y, g.Vertices[1].Y, eps)

	assert.InDelta(t, 13.0/19.0, g.Vertices[2].Fraction, eps)
}

func TestConfigFor(t *testing.T) {
	for _, v := range talent.AllVariants() {
		cfg := ConfigFor(v)
		assert.Equal(t, talent.MaxScore(v), cfg.MaxScore, "variant %s", v)
		require.NoError(t, cfg.Validate())

		g, err := Project(uniform(talent.MaxScore(v)), cfg)
		require.NoError(t, err)
		for _, vx := range g.Vertices {
			assert.InDelta(t, 1, vx.Fraction, eps, "a perfect total sits on the outer ring")
		}
	}

	assert.Equal(t, DefaultConfig(), ConfigFor("bogus"), "unknown variants keep the default scale")
}

func TestProject_Rings(t *testing.T) {
	g, err := Project(uniform(10), DefaultConfig())
	require.NoError(t, err)

	require.Len(t, g.Rings, 4)
	wantLevels := []int{4, 3, 2, 1}
	for i, r := range g.Rings {
		assert.Equal(t, wantLevels[i], r.Level)
		assert.InDelta(t, float64(r.Level)/4, r.Fraction, eps)
		require.Len(t, r.Points, 10)
		assert.InDelta(t, g.Radius*r.Fraction, dist(g.Center, r.Points[3]), 1e-6)
	}
	assert.Equal(t, g.Axes, g.Rings[0].Points)
}

func TestProject_Labels(t *testing.T) {
	scores := scoring.ScoreTable{talent.CategoryA: 14, talent.CategoryD: 7}
	g, err := Project(scores, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "A（14分）", g.Labels[0].Text)
	assert.Equal(t, "D（7分）", g.Labels[1].Text)
	assert.InDelta(t, 100, dist(g.Center, g.Labels[0].Point), 1e-6)
	assert.InDelta(t, 25, g.Labels[0].Y, eps)
}

func TestProject_Deterministic(t *testing.T) {
	scores := scoring.ScoreTable{talent.CategoryJ: 9, talent.CategoryB: 17, talent.CategoryE: 4}
	g1, err := Project(scores, DefaultConfig())
	require.NoError(t, err)
	g2, err := Project(scores, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, g1, g2)
	assert.Equal(t, []talent.Category{talent.CategoryB, talent.CategoryE, talent.CategoryJ}, g1.Categories)
}

func TestRenderSVG(t *testing.T) {
	g, err := Project(uniform(12), DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, g, DefaultSVGOptions()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, `width="250"`)
	assert.Equal(t, 5, strings.Count(out, "<polygon "), "four rings plus the data area")
	assert.Equal(t, 10, strings.Count(out, "<circle "))
	assert.Equal(t, 10, strings.Count(out, "<line "))
	assert.Contains(t, out, "J（12分）")
	assert.Contains(t, out, `<line x1="125" y1="125" x2="125" y2="45"`)
}

func TestRenderSVG_NoArea(t *testing.T) {
	g, err := Project(uniform(12), DefaultConfig())
	require.NoError(t, err)

	opts := DefaultSVGOptions()
	opts.Area = ""
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, g, opts))
	assert.Equal(t, 4, strings.Count(buf.String(), "<polygon "))
}

func TestRenderSVG_EscapesText(t *testing.T) {
	g := &Geometry{
		Size:   100,
		Labels: []Label{{Text: "<b>&"}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, g, DefaultSVGOptions()))
	assert.Contains(t, buf.String(), "&lt;b&gt;&amp;")
}

func TestRenderSVG_NilGeometry(t *testing.T) {
	assert.Error(t, RenderSVG(&bytes.Buffer{}, nil, DefaultSVGOptions()))
}
