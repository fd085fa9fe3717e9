package radar

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SVGOptions controls colors and text of the rendered chart.
type SVGOptions struct {
	Stroke    string // rings, spokes and labels
	Dot       string // data point fill
	Area      string // data polygon fill; empty disables the polygon
	AreaAlpha float64
	FontSize  int
	DotRadius float64
}

// DefaultSVGOptions matches the black-on-white look of the result page.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Stroke:    "black",
		Dot:       "black",
		Area:      "#8B5CF6",
		AreaAlpha: 0.25,
		FontSize:  12,
		DotRadius: 3,
	}
}

// RenderSVG writes g as a standalone SVG element.
func RenderSVG(w io.Writer, g *Geometry, opts SVGOptions) error {
	if g == nil {
		return errors.New("radar: nil geometry")
	}
	bw := bufio.NewWriter(w)

	size := num(g.Size)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" class="radar" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		size, size, size, size)

	bw.WriteString("  <g class=\"rings\">\n")
	for _, r := range g.Rings {
		fmt.Fprintf(bw, `    <polygon points="%s" fill="none" stroke="%s" stroke-width="0.5"/>`+"\n",
			points(r.Points), attr(opts.Stroke))
	}
	bw.WriteString("  </g>\n")

	if opts.Area != "" && len(g.Vertices) > 2 {
		pts := make([]Point, len(g.Vertices))
		for i, v := range g.Vertices {
			pts[i] = v.Point
		}
		fmt.Fprintf(bw, `  <polygon class="area" points="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="1"/>`+"\n",
			points(pts), attr(opts.Area), num(opts.AreaAlpha), attr(opts.Area))
	}

	bw.WriteString("  <g class=\"dots\">\n")
	for _, v := range g.Vertices {
		fmt.Fprintf(bw, `    <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			num(v.X), num(v.Y), num(opts.DotRadius), attr(opts.Dot))
	}
	bw.WriteString("  </g>\n")

	bw.WriteString("  <g class=\"labels\">\n")
	for _, l := range g.Labels {
		fmt.Fprintf(bw, `    <text x="%s" y="%s" font-size="%d" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
			num(l.X), num(l.Y), opts.FontSize, attr(opts.Stroke), text(l.Text))
	}
	bw.WriteString("  </g>\n")

	bw.WriteString("  <g class=\"axes\">\n")
	for _, a := range g.Axes {
		fmt.Fprintf(bw, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(g.Center.X), num(g.Center.Y), num(a.X), num(a.Y), attr(opts.Stroke))
	}
	bw.WriteString("  </g>\n")

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// num formats a coordinate rounded to two decimals.
func num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func points(ps []Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func text(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func attr(s string) string {
	return text(s)
}
