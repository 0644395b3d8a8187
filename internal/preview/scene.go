// Package preview projects a configuration onto a simple front view of the
// dormer. Render is pure: the same slice always yields the same scene.
package preview

import (
	"math"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
)

const (
	CanvasWidth  = 800.0
	CanvasHeight = 420.0

	// pixels per centimetre
	Scale = 1.2

	cheekCm      = 15.0
	groundMargin = 60.0
	maxWindows   = 4
)

// Slice is the part of a configuration the preview depends on.
type Slice struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Model       domain.ModelType   `json:"model"`
	Material    domain.Material    `json:"material"`
	Colors      domain.Colors      `json:"colors"`
	WindowCount int                `json:"windowCount"`
	Features    []domain.OptionKey `json:"features"`
}

// VisibleOptions are the options that change the drawing.
var VisibleOptions = []domain.OptionKey{
	domain.OptVentilatie,
	domain.OptZonwering,
	domain.OptHorren,
	domain.OptAirco,
	domain.OptElektrischRolluik,
	domain.OptVersteviging,
	domain.OptKozijnpakket,
	domain.OptExtraIsolatie,
	domain.OptDakhellingMontage,
}

func SliceOf(c domain.Configuration) Slice {
	s := Slice{
		Width:       c.Width,
		Height:      c.Height,
		Model:       c.Model,
		Material:    c.Material,
		Colors:      c.Colors,
		WindowCount: c.WindowCount,
	}
	for _, k := range VisibleOptions {
		if c.Options.Get(k) {
			s.Features = append(s.Features, k)
		}
	}
	return s
}

type ShapeKind string

const (
	ShapeRect    ShapeKind = "rect"
	ShapePolygon ShapeKind = "polygon"
	ShapeLine    ShapeKind = "line"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Shape struct {
	Kind        ShapeKind `json:"kind"`
	Rect        Rect      `json:"rect,omitempty"`
	Points      []Point   `json:"points,omitempty"`
	Fill        string    `json:"fill"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dash        string    `json:"dash,omitempty"` // SVG dash pattern, e.g. "6,4"
	Opacity     float64   `json:"opacity,omitempty"`
}

// Layer is a named group of shapes. Feature layers are named after the
// option that produces them.
type Layer struct {
	Name   string  `json:"name"`
	Shapes []Shape `json:"shapes"`
}

// Window is the geometry of one window in the front.
type Window struct {
	Frame Rect `json:"frame"`
	Sash  Rect `json:"sash"`
}

type Scene struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Body    Rect     `json:"body"`
	Cheek   float64  `json:"cheek"`
	Windows []Window `json:"windows"`
	Layers  []Layer  `json:"layers"`
}

// Layer returns the layer with the given name.
func (s Scene) Layer(name string) (Layer, bool) {
	for _, l := range s.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// FeatureLayer is the layer name used for a visible option.
func FeatureLayer(k domain.OptionKey) string { return "feature." + string(k) }

// Render builds the scene for s.
func Render(s Slice) Scene {
	width, height := s.Width, s.Height
	if width <= 0 {
		width = domain.DefaultWidth
	}
	if height <= 0 {
		height = domain.DefaultHeight
	}

	bodyW := float64(width) * Scale
	bodyH := float64(height) * Scale
	body := Rect{
		X: round2((CanvasWidth - bodyW) / 2),
		Y: round2(CanvasHeight - groundMargin - bodyH),
		W: round2(bodyW),
		H: round2(bodyH),
	}
	cheek := round2(cheekCm * Scale)
	windows := layoutWindows(body, cheek, s.WindowCount)

	sc := Scene{
		Width:   CanvasWidth,
		Height:  CanvasHeight,
		Body:    body,
		Cheek:   cheek,
		Windows: windows,
	}

	side := Hex(s.Colors.Side)
	sc.Layers = append(sc.Layers,
		Layer{Name: "context", Shapes: []Shape{{
			Kind: ShapeRect,
			Rect: Rect{X: 0, Y: body.Y + body.H, W: CanvasWidth, H: groundMargin},
			Fill: roofTileColor,
		}}},
		Layer{Name: "roof", Shapes: []Shape{roofShape(s.Model, body)}},
		Layer{Name: "body", Shapes: []Shape{
			{Kind: ShapeRect, Rect: body, Fill: side, Stroke: outline, StrokeWidth: 1},
			{Kind: ShapeRect, Rect: Rect{X: body.X, Y: body.Y, W: cheek, H: body.H}, Fill: side, Stroke: outline, StrokeWidth: 1},
			{Kind: ShapeRect, Rect: Rect{X: round2(body.X + body.W - cheek), Y: body.Y, W: cheek, H: body.H}, Fill: side, Stroke: outline, StrokeWidth: 1},
		}},
		Layer{Name: "texture", Shapes: texture(s.Material, body, cheek)},
		Layer{Name: "windows", Shapes: windowShapes(windows, Hex(s.Colors.Frame), Hex(s.Colors.Sash))},
	)

	enabled := map[domain.OptionKey]bool{}
	for _, k := range s.Features {
		enabled[k] = true
	}
	for _, k := range VisibleOptions {
		if enabled[k] {
			sc.Layers = append(sc.Layers, Layer{Name: FeatureLayer(k), Shapes: feature(k, body, windows)})
		}
	}
	return sc
}

// layoutWindows places n equal windows centred in the usable width between
// the cheeks: each window takes usable*0.8/n and the gap is usable*0.04.
func layoutWindows(body Rect, cheek float64, n int) []Window {
	if n < 1 {
		n = 1
	}
	if n > maxWindows {
		n = maxWindows
	}
	usable := body.W - 2*cheek
	w := usable * 0.8 / float64(n)
	gap := usable * 0.04
	group := w*float64(n) + gap*float64(n-1)
	x := body.X + cheek + (usable-group)/2

	y := body.Y + body.H*0.15
	h := body.H * 0.7

	out := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		frame := Rect{X: x, Y: y, W: w, H: h}
		out = append(out, Window{
			Frame: frame,
			Sash:  Rect{X: frame.X + sashInset, Y: frame.Y + sashInset, W: frame.W - 2*sashInset, H: frame.H - 2*sashInset},
		})
		x += w + gap
	}
	return out
}

const sashInset = 4.0

func windowShapes(ws []Window, frame, sash string) []Shape {
	out := make([]Shape, 0, 2*len(ws))
	for _, w := range ws {
		out = append(out,
			Shape{Kind: ShapeRect, Rect: w.Frame, Fill: frame, Stroke: outline, StrokeWidth: 1},
			Shape{Kind: ShapeRect, Rect: w.Sash, Fill: glass, Stroke: sash, StrokeWidth: 3},
		)
	}
	return out
}

func roofShape(m domain.ModelType, b Rect) Shape {
	left, right := b.X-6, b.X+b.W+6
	switch m {
	case domain.ModelTypeB:
		return Shape{Kind: ShapePolygon, Fill: roofColor, Points: []Point{
			{left, b.Y}, {b.X + b.W/2, round2(b.Y - b.H*0.45)}, {right, b.Y},
		}}
	case domain.ModelTypeC:
		return Shape{Kind: ShapeRect, Fill: roofColor, Rect: Rect{X: b.X - 24, Y: b.Y - 14, W: b.W + 48, H: 14}}
	case domain.ModelTypeD:
		return Shape{Kind: ShapePolygon, Fill: roofColor, Points: []Point{
			{left, b.Y}, {left, round2(b.Y - b.H*0.3)}, {right, b.Y - 8}, {right, b.Y},
		}}
	case domain.ModelTypeE:
		return Shape{Kind: ShapePolygon, Fill: roofColor, Points: []Point{
			{left, b.Y}, {round2(b.X + b.W*0.12), round2(b.Y - b.H*0.3)},
			{round2(b.X + b.W*0.88), round2(b.Y - b.H*0.3)}, {right, b.Y},
		}}
	}
	// flat roof, also used for unknown models
	return Shape{Kind: ShapeRect, Fill: roofColor, Rect: Rect{X: left, Y: b.Y - 14, W: b.W + 12, H: 14}}
}

func texture(m domain.Material, b Rect, cheek float64) []Shape {
	var step float64
	vertical := false
	switch m {
	case domain.MaterialHout:
		step = 12
	case domain.MaterialLeien:
		step = 8
	case domain.MaterialZink:
		step, vertical = 20, true
	default:
		return nil
	}

	var out []Shape
	line := func(a, z Point) {
		out = append(out, Shape{Kind: ShapeLine, Points: []Point{a, z}, Stroke: textureStroke, StrokeWidth: 1, Opacity: 0.4})
	}
	// texture only on the cheeks so it never crosses a window
	for _, x0 := range []float64{b.X, b.X + b.W - cheek} {
		if vertical {
			for x := x0 + step/2; x < x0+cheek; x += step {
				line(Point{round2(x), b.Y}, Point{round2(x), b.Y + b.H})
			}
			continue
		}
		for y := b.Y + step; y < b.Y+b.H; y += step {
			line(Point{x0, round2(y)}, Point{round2(x0 + cheek), round2(y)})
		}
	}
	return out
}

func feature(k domain.OptionKey, b Rect, ws []Window) []Shape {
	var out []Shape
	switch k {
	case domain.OptVentilatie:
		for _, w := range ws {
			out = append(out, Shape{Kind: ShapeRect, Fill: "#9aa0a6", Stroke: outline, StrokeWidth: 1,
				Rect: Rect{X: w.Frame.X + w.Frame.W*0.25, Y: w.Frame.Y - 9, W: w.Frame.W * 0.5, H: 5}})
		}
	case domain.OptZonwering:
		for _, w := range ws {
			out = append(out, Shape{Kind: ShapeRect, Fill: "#c8b27a", Opacity: 0.6,
				Rect: Rect{X: w.Frame.X, Y: w.Frame.Y, W: w.Frame.W, H: w.Frame.H * 0.35}})
		}
	case domain.OptHorren:
		for _, w := range ws {
			out = append(out, Shape{Kind: ShapeRect, Fill: "#444444", Opacity: 0.15, Rect: w.Sash})
		}
	case domain.OptElektrischRolluik:
		for _, w := range ws {
			out = append(out, Shape{Kind: ShapeRect, Fill: "#d9d9d9", Stroke: outline, StrokeWidth: 1,
				Rect: Rect{X: w.Frame.X, Y: w.Frame.Y, W: w.Frame.W, H: 10}})
		}
	case domain.OptAirco:
		out = append(out, Shape{Kind: ShapeRect, Fill: "#f0f0f0", Stroke: outline, StrokeWidth: 1,
			Rect: Rect{X: b.X + b.W + 10, Y: b.Y + b.H - 28, W: 40, H: 24}})
	case domain.OptVersteviging:
		// steel bracket just below the body, on the roof surface
		out = append(out, Shape{Kind: ShapeRect, Fill: "#6b6e70", Stroke: outline, StrokeWidth: 1,
			Rect: Rect{X: b.X + 6, Y: b.Y + b.H + 2, W: b.W - 12, H: 6}})
	case domain.OptKozijnpakket:
		for _, w := range ws {
			out = append(out, Shape{Kind: ShapeRect, Stroke: outline, StrokeWidth: 2,
				Rect: Rect{X: w.Frame.X - 3, Y: w.Frame.Y - 3, W: w.Frame.W + 6, H: w.Frame.H + 6}})
		}
	case domain.OptExtraIsolatie:
		out = append(out, Shape{Kind: ShapeRect, Stroke: "#e07a1f", StrokeWidth: 1.5, Dash: "6,4",
			Rect: Rect{X: b.X + 2, Y: b.Y + 2, W: b.W - 4, H: b.H - 4}})
	case domain.OptDakhellingMontage:
		base := b.Y + b.H
		out = append(out, Shape{Kind: ShapePolygon, Fill: "#8d6e4a", Stroke: outline, StrokeWidth: 1,
			Points: []Point{
				{b.X - 12, base}, {b.X + b.W + 12, base}, {b.X + b.W + 12, base + 10},
			}})
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
