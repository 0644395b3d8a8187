// Package pricing holds the pricing table and the pure price engine.
package pricing

import (
	"time"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
)

// Unit says how an option price scales.
type Unit string

const (
	UnitFlat      Unit = "flat"
	UnitPerMeter  Unit = "per_meter"
	UnitPerWindow Unit = "per_window"
)

type OptionPrice struct {
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   Unit    `json:"unit" yaml:"unit"`
}

// DefaultTaxRate is used when a table carries no rate.
const DefaultTaxRate = 0.10

// Table is one version of the admin-editable price parameters.
// Lookups never fail: missing additive entries cost 0 and missing
// multipliers are neutral.
type Table struct {
	Version     int64     `json:"version" yaml:"-"`
	ProductLine string    `json:"productLine" yaml:"-"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`

	BasePriceByType      map[domain.ModelType]float64       `json:"basePriceByType" yaml:"base_price_by_type"`
	BasePriceByWidth     map[domain.WidthBucket]float64     `json:"basePriceByWidth" yaml:"base_price_by_width"`
	ModelMultiplier      map[domain.ModelType]float64       `json:"modelMultiplier" yaml:"model_multiplier"`
	MaterialMultiplier   map[domain.Material]float64        `json:"materialMultiplier" yaml:"material_multiplier"`
	MaterialExtraCost    map[domain.Material]float64        `json:"materialExtraCost" yaml:"material_extra_cost"`
	ColorSurcharge       map[domain.Color]float64           `json:"colorSurcharge" yaml:"color_surcharge"`
	OptionPrice          map[domain.OptionKey]OptionPrice   `json:"optionPrice" yaml:"option_price"`
	InsulationSurcharge  map[domain.InsulationTier]float64  `json:"insulationSurcharge" yaml:"insulation_surcharge"`
	FrameHeightSurcharge map[domain.FrameHeightTier]float64 `json:"frameHeightSurcharge" yaml:"frame_height_surcharge"`
	TaxRate              float64                            `json:"taxRate" yaml:"tax_rate"`
}

func (t *Table) basePriceByType(m domain.ModelType) float64 {
	return t.BasePriceByType[m]
}

func (t *Table) basePriceByWidth(b domain.WidthBucket) float64 {
	return t.BasePriceByWidth[b]
}

func (t *Table) modelMultiplier(m domain.ModelType) float64 {
	return factor(t.ModelMultiplier, m)
}

func (t *Table) materialMultiplier(m domain.Material) float64 {
	return factor(t.MaterialMultiplier, m)
}

func (t *Table) optionPrice(k domain.OptionKey) OptionPrice {
	p, ok := t.OptionPrice[k]
	if !ok {
		return OptionPrice{Unit: UnitFlat}
	}
	if p.Unit == "" {
		p.Unit = UnitFlat
	}
	return p
}

func (t *Table) taxRate() float64 {
	if t.TaxRate <= 0 {
		return DefaultTaxRate
	}
	return t.TaxRate
}

// factor looks up a multiplier; a missing entry means "no change".
func factor[K comparable](m map[K]float64, k K) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return 1
}

// Validate rejects tables that can not be published.
func (t *Table) Validate() error {
	for k, v := range t.ModelMultiplier {
		if v <= 0 {
			return &InvalidTableError{Key: "modelMultiplier." + string(k), Msg: "multiplier must be positive"}
		}
	}
	for k, v := range t.MaterialMultiplier {
		if v <= 0 {
			return &InvalidTableError{Key: "materialMultiplier." + string(k), Msg: "multiplier must be positive"}
		}
	}
	for k, p := range t.OptionPrice {
		switch p.Unit {
		case "", UnitFlat, UnitPerMeter, UnitPerWindow:
		default:
			return &InvalidTableError{Key: "optionPrice." + string(k), Msg: "unknown unit " + string(p.Unit)}
		}
	}
	if t.TaxRate < 0 || t.TaxRate >= 1 {
		return &InvalidTableError{Key: "taxRate", Msg: "tax rate must be in [0, 1)"}
	}
	return nil
}

type InvalidTableError struct {
	Key string
	Msg string
}

func (e *InvalidTableError) Error() string {
	return "pricing table: " + e.Key + ": " + e.Msg
}
