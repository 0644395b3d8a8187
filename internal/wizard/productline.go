// Package wizard drives a configuration session through the ordered steps of
// a product line and keeps the price and preview in sync with it.
package wizard

import (
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
)

type StepID string

const (
	StepDimensions StepID = "dimensions"
	StepRoof       StepID = "roof"
	StepModel      StepID = "model"
	StepMaterial   StepID = "material"
	StepColors     StepID = "colors"
	StepFinish     StepID = "finish"
	StepOptions    StepID = "options"
	StepContact    StepID = "contact"
)

// Step owns the configuration fields it may edit.
type Step struct {
	ID     StepID         `json:"id"`
	Title  string         `json:"title"`
	Fields []domain.Field `json:"fields"`
}

func (s Step) Owns(f domain.Field) bool {
	for _, x := range s.Fields {
		if x == f {
			return true
		}
	}
	return false
}

type ProductLine struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Strategy pricing.Strategy `json:"strategy"`
	Steps    []Step           `json:"steps"`
}

// Step returns step n, counted from 1. Out-of-range n is clamped.
func (p ProductLine) Step(n int) Step {
	if len(p.Steps) == 0 {
		return Step{}
	}
	if n < 1 {
		n = 1
	}
	if n > len(p.Steps) {
		n = len(p.Steps)
	}
	return p.Steps[n-1]
}

const (
	LineCalculator   = "dakkapel-calculator"
	LineSnel         = "dakkapel-snel"
	LineConfigurator = "dakkapel-configurator"
)

var (
	stepDimensions = Step{ID: StepDimensions, Title: "Afmetingen", Fields: []domain.Field{domain.FieldWidth, domain.FieldHeight}}
	stepRoof       = Step{ID: StepRoof, Title: "Dak", Fields: []domain.Field{domain.FieldRoofAngle, domain.FieldElevation}}
	stepModel      = Step{ID: StepModel, Title: "Model", Fields: []domain.Field{domain.FieldModel}}
	stepMaterial   = Step{ID: StepMaterial, Title: "Materiaal", Fields: []domain.Field{domain.FieldMaterial}}
	stepColors     = Step{ID: StepColors, Title: "Kleuren", Fields: []domain.Field{domain.FieldColors}}
	stepFinish     = Step{ID: StepFinish, Title: "Afwerking", Fields: []domain.Field{domain.FieldInsulation, domain.FieldFrameHeight}}
	stepContact    = Step{ID: StepContact, Title: "Gegevens", Fields: []domain.Field{domain.FieldContact}}
)

func optionsStep(fields ...domain.Field) Step {
	return Step{ID: StepOptions, Title: "Opties", Fields: append([]domain.Field{domain.FieldOptions}, fields...)}
}

var productLines = []ProductLine{
	{
		ID:       LineCalculator,
		Name:     "Dakkapel prijs berekenen",
		Strategy: pricing.StrategyModelMultiplier,
		Steps: []Step{
			stepModel,
			stepMaterial,
			stepColors,
			optionsStep(domain.FieldWindowCount, domain.FieldDeliveryTime),
			stepContact,
		},
	},
	{
		ID:       LineSnel,
		Name:     "Dakkapel snel offerte",
		Strategy: pricing.StrategyWidthBucket,
		Steps: []Step{
			{ID: StepDimensions, Title: "Afmetingen", Fields: []domain.Field{domain.FieldWidth, domain.FieldHeight, domain.FieldWindowCount}},
			stepModel,
			stepMaterial,
			stepColors,
			optionsStep(domain.FieldDeliveryTime),
			stepContact,
		},
	},
	{
		ID:       LineConfigurator,
		Name:     "Dakkapel configurator",
		Strategy: pricing.StrategyWidthBucket,
		Steps: []Step{
			stepDimensions,
			stepRoof,
			stepModel,
			stepMaterial,
			stepColors,
			stepFinish,
			optionsStep(domain.FieldWindowCount, domain.FieldDeliveryTime),
			stepContact,
		},
	},
}

// ProductLines returns the built-in lines in display order.
func ProductLines() []ProductLine {
	out := make([]ProductLine, len(productLines))
	copy(out, productLines)
	return out
}

func LookupProductLine(id string) (ProductLine, bool) {
	for _, p := range productLines {
		if p.ID == id {
			return p, true
		}
	}
	return ProductLine{}, false
}
