package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/ui/theme"
)

// Cell kinds in draw priority order.
const (
	cellEmpty = iota
	cellRing
	cellAxis
	cellArea
	cellVertex
	cellLabel
)

type chartCell struct {
	r    rune
	kind int
}

// RadarChart plots a projected radar chart on a character grid. Terminal
// cells are roughly twice as tall as wide, so Width should be about twice
// Height for a round chart.
type RadarChart struct {
	Geometry *radar.Geometry
	Width    int
	Height   int
}

// NewRadarChart sizes a chart to fit inside the given box.
func NewRadarChart(g *radar.Geometry, maxWidth, maxHeight int) RadarChart {
	h := maxHeight
	if maxWidth/2 < h {
		h = maxWidth / 2
	}
	return RadarChart{Geometry: g, Width: h * 2, Height: h}
}

type chartGrid struct {
	cells [][]chartCell
	w, h  int
	scale func(radar.Point) (int, int)
}

func (c RadarChart) newGrid() *chartGrid {
	g := c.Geometry
	grid := &chartGrid{w: c.Width, h: c.Height}
	grid.cells = make([][]chartCell, c.Height)
	for i := range grid.cells {
		grid.cells[i] = make([]chartCell, c.Width)
		for j := range grid.cells[i] {
			grid.cells[i][j] = chartCell{r: ' '}
		}
	}
	grid.scale = func(p radar.Point) (int, int) {
		col := int(math.Round(p.X / g.Size * float64(c.Width-1)))
		row := int(math.Round(p.Y / g.Size * float64(c.Height-1)))
		return col, row
	}
	return grid
}

func (g *chartGrid) set(col, row int, r rune, kind int) {
	if row < 0 || row >= g.h || col < 0 || col >= g.w {
		return
	}
	if g.cells[row][col].kind > kind {
		return
	}
	g.cells[row][col] = chartCell{r: r, kind: kind}
}

func (g *chartGrid) line(a, b radar.Point, r rune, kind int) {
	c0, r0 := g.scale(a)
	c1, r1 := g.scale(b)
	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		g.set(c0, r0, r, kind)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Round(float64(c0) + t*float64(c1-c0)))
		row := int(math.Round(float64(r0) + t*float64(r1-r0)))
		g.set(col, row, r, kind)
	}
}

func (g *chartGrid) polygon(ps []radar.Point, r rune, kind int) {
	for i := range ps {
		g.line(ps[i], ps[(i+1)%len(ps)], r, kind)
	}
}

// text writes s centered on p, shifted inward when it would overflow.
func (g *chartGrid) text(p radar.Point, s string) {
	col, row := g.scale(p)
	runes := []rune(s)
	start := col - len(runes)/2
	start = min(max(start, 0), g.w-len(runes))
	for i, r := range runes {
		g.set(start+i, row, r, cellLabel)
	}
}

// View renders the chart, or "" when there is nothing to draw.
func (c RadarChart) View() string {
	geo := c.Geometry
	if geo == nil || len(geo.Vertices) == 0 || c.Width < 10 || c.Height < 5 {
		return ""
	}

	grid := c.newGrid()
	for _, ring := range geo.Rings {
		grid.polygon(ring.Points, '·', cellRing)
	}
	for _, a := range geo.Axes {
		grid.line(geo.Center, a, '.', cellAxis)
	}
	area := make([]radar.Point, len(geo.Vertices))
	for i, v := range geo.Vertices {
		area[i] = v.Point
	}
	grid.polygon(area, '*', cellArea)
	for _, v := range geo.Vertices {
		col, row := grid.scale(v.Point)
		grid.set(col, row, '●', cellVertex)
	}
	for i, l := range geo.Labels {
		grid.text(l.Point, fmt.Sprintf("%s %d", l.Category, geo.Vertices[i].Score))
	}

	styles := map[int]lipgloss.Style{
		cellRing:   theme.ChartRing,
		cellAxis:   theme.ChartRing,
		cellArea:   theme.ChartArea,
		cellVertex: theme.ChartArea.Foreground(theme.Accent),
		cellLabel:  theme.ChartLabel,
	}

	lines := make([]string, 0, grid.h)
	for _, row := range grid.cells {
		var b strings.Builder
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].kind == row[i].kind {
				run.WriteRune(row[j].r)
				j++
			}
			if style, ok := styles[row[i].kind]; ok {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			i = j
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
