package preview

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG renders the scene. Coordinates are rounded to whole pixels.
func SVG(sc Scene) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(sc.Width), px(sc.Height))
	canvas.Title("Dakkapel")
	for _, l := range sc.Layers {
		canvas.Gid(l.Name)
		for _, s := range l.Shapes {
			drawShape(canvas, s)
		}
		canvas.Gend()
	}
	canvas.End()
	return buf.Bytes()
}

func drawShape(canvas *svg.SVG, s Shape) {
	st := style(s)
	switch s.Kind {
	case ShapeRect:
		canvas.Rect(px(s.Rect.X), px(s.Rect.Y), px(s.Rect.W), px(s.Rect.H), st)
	case ShapePolygon:
		xs := make([]int, len(s.Points))
		ys := make([]int, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = px(p.X), px(p.Y)
		}
		canvas.Polygon(xs, ys, st)
	case ShapeLine:
		if len(s.Points) == 2 {
			a, b := s.Points[0], s.Points[1]
			canvas.Line(px(a.X), px(a.Y), px(b.X), px(b.Y), st)
		}
	}
}

func style(s Shape) string {
	parts := []string{"fill:" + orNone(s.Fill)}
	if s.Stroke != "" {
		parts = append(parts, "stroke:"+s.Stroke, fmt.Sprintf("stroke-width:%g", s.StrokeWidth))
		if s.Dash != "" {
			parts = append(parts, "stroke-dasharray:"+s.Dash)
		}
	}
	if s.Opacity > 0 {
		parts = append(parts, fmt.Sprintf("opacity:%g", s.Opacity))
	}
	return strings.Join(parts, ";")
}

func orNone(c string) string {
	if c == "" {
		return "none"
	}
	return c
}

func px(v float64) int { return int(math.Round(v)) }
