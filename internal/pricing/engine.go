package pricing

import (
	"fmt"
	"math"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
)

// Strategy selects how the base price is built for a product line.
type Strategy string

const (
	// StrategyModelMultiplier: base per model type times the model
	// multiplier, then the material factor, then additive prices.
	StrategyModelMultiplier Strategy = "model_multiplier"
	// StrategyWidthBucket: base per width bucket times the material factor
	// times the model multiplier, then additive prices.
	StrategyWidthBucket Strategy = "width_bucket"
)

func (s Strategy) Valid() bool {
	return s == StrategyModelMultiplier || s == StrategyWidthBucket
}

type LineKind string

const (
	KindBase      LineKind = "base"
	KindSurcharge LineKind = "surcharge"
	KindOption    LineKind = "option"
	KindTax       LineKind = "tax"
)

// Line is one named entry of a price breakdown.
type Line struct {
	Code      string   `json:"code"`
	Label     string   `json:"label"`
	Kind      LineKind `json:"kind"`
	Amount    float64  `json:"amount"`
	Quantity  float64  `json:"quantity,omitempty"`
	Unit      Unit     `json:"unit,omitempty"`
	UnitPrice float64  `json:"unitPrice,omitempty"`
	Waived    bool     `json:"waived,omitempty"`
}

// Breakdown is derived on every read and never stored.
type Breakdown struct {
	Lines        []Line  `json:"lines"`
	Subtotal     float64 `json:"subtotal"`
	TaxRate      float64 `json:"taxRate"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
	TableVersion int64   `json:"tableVersion"`
}

// ExclusiveOfTax is the display value total / (1 + rate).
func (b Breakdown) ExclusiveOfTax() float64 {
	return round2(b.Total / (1 + b.TaxRate))
}

// Line returns the line with the given code.
func (b Breakdown) Line(code string) (Line, bool) {
	for _, l := range b.Lines {
		if l.Code == code {
			return l, true
		}
	}
	return Line{}, false
}

const (
	CodeBase        = "base"
	CodeModel       = "model"
	CodeMaterial    = "material"
	CodeColorFrame  = "color.frame"
	CodeColorSide   = "color.side"
	CodeColorSash   = "color.sash"
	CodeInsulation  = "insulation"
	CodeFrameHeight = "frame_height"
	CodeTax         = "tax"
)

// OptionCode is the line code of an option.
func OptionCode(k domain.OptionKey) string { return "option." + string(k) }

// Compute prices cfg against t. It is pure: no I/O, no clock, and the same
// inputs always produce the same breakdown. A nil table prices everything at 0.
func Compute(cfg domain.Configuration, t *Table, s Strategy) Breakdown {
	if t == nil {
		t = &Table{}
	}
	var lines []Line
	add := func(l Line) {
		l.Amount = round2(l.Amount)
		if l.Amount == 0 && !l.Waived && l.Kind != KindBase {
			return
		}
		lines = append(lines, l)
	}

	modelMult := t.modelMultiplier(cfg.Model)
	materialMult := t.materialMultiplier(cfg.Material)
	extra := t.MaterialExtraCost[cfg.Material]

	switch s {
	case StrategyWidthBucket:
		bucket := cfg.WidthBucket()
		base := t.basePriceByWidth(bucket)
		add(Line{Code: CodeBase, Label: fmt.Sprintf("Basisprijs breedte %s cm", bucket), Kind: KindBase, Amount: base})
		add(Line{Code: CodeMaterial, Label: "Materiaal " + string(cfg.Material), Kind: KindSurcharge, Amount: base*(materialMult-1) + extra})
		add(Line{Code: CodeModel, Label: "Model " + cfg.Model.Label(), Kind: KindSurcharge, Amount: base * materialMult * (modelMult - 1)})
	default:
		base := t.basePriceByType(cfg.Model)
		add(Line{Code: CodeBase, Label: "Basisprijs " + cfg.Model.Label(), Kind: KindBase, Amount: base})
		add(Line{Code: CodeModel, Label: "Toeslag model", Kind: KindSurcharge, Amount: base * (modelMult - 1)})
		add(Line{Code: CodeMaterial, Label: "Materiaal " + string(cfg.Material), Kind: KindSurcharge, Amount: base*modelMult*(materialMult-1) + extra})
	}

	add(Line{Code: CodeColorFrame, Label: "Kleur kozijn " + string(cfg.Colors.Frame), Kind: KindSurcharge, Amount: t.ColorSurcharge[cfg.Colors.Frame]})
	add(Line{Code: CodeColorSide, Label: "Kleur zijwangen " + string(cfg.Colors.Side), Kind: KindSurcharge, Amount: t.ColorSurcharge[cfg.Colors.Side]})
	add(Line{Code: CodeColorSash, Label: "Kleur draaidelen " + string(cfg.Colors.Sash), Kind: KindSurcharge, Amount: t.ColorSurcharge[cfg.Colors.Sash]})
	add(Line{
		Code:   CodeInsulation,
		Label:  fmt.Sprintf("Isolatie Rc %.1f", cfg.Insulation.RcValue()),
		Kind:   KindSurcharge,
		Amount: t.InsulationSurcharge[cfg.Insulation],
	})
	add(Line{Code: CodeFrameHeight, Label: "Kozijnhoogte " + string(cfg.FrameHeight), Kind: KindSurcharge, Amount: t.FrameHeightSurcharge[cfg.FrameHeight]})

	for _, k := range cfg.Options.Enabled() {
		add(optionLine(cfg, t, k))
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.Amount
	}
	subtotal = round2(subtotal)
	rate := t.taxRate()
	total := round2(subtotal * (1 + rate))
	tax := round2(total - subtotal)

	lines = append(lines, Line{
		Code:   CodeTax,
		Label:  fmt.Sprintf("BTW %g%%", round2(rate*100)),
		Kind:   KindTax,
		Amount: tax,
	})

	return Breakdown{
		Lines:        lines,
		Subtotal:     subtotal,
		TaxRate:      rate,
		Tax:          tax,
		Total:        total,
		TableVersion: t.Version,
	}
}

func optionLine(cfg domain.Configuration, t *Table, k domain.OptionKey) Line {
	p := t.optionPrice(k)
	l := Line{
		Code:      OptionCode(k),
		Label:     k.Label(),
		Kind:      KindOption,
		Unit:      p.Unit,
		UnitPrice: p.Amount,
	}
	switch p.Unit {
	case UnitPerMeter:
		l.Quantity = cfg.WidthMeters()
		l.Amount = p.Amount * l.Quantity
	case UnitPerWindow:
		l.Quantity = float64(cfg.WindowCount)
		l.Amount = p.Amount * l.Quantity
	default:
		l.Amount = p.Amount
	}
	if cfg.Options.PriceWaived(k) {
		l.Amount = 0
		l.Waived = true
		l.Label += " (inbegrepen)"
	}
	return l
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
