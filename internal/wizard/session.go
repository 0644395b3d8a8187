package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
)

var (
	ErrSessionNotFound    = errors.New("wizard: session not found")
	ErrUnknownProductLine = errors.New("wizard: unknown product line")
	ErrFieldNotInStep     = errors.New("wizard: field is not part of the current step")
	ErrNoAdvicePending    = errors.New("wizard: no advice requested for field")
	ErrNotFinalStep       = errors.New("wizard: submit is only possible on the final step")
	ErrRefreshNotAllowed  = errors.New("wizard: pricing can only be refreshed on the first step or while on built-in prices")
)

// AdviceDialog is opened when the customer answers "advies" for a dimension.
// The field keeps its previous concrete value until the dialog is resolved.
type AdviceDialog struct {
	Field     domain.Field `json:"field"`
	Suggested int          `json:"suggested"`
	Allowed   []int        `json:"allowed"`
	Message   string       `json:"message"`
}

func newAdviceDialog(f domain.Field, cfg domain.Configuration) AdviceDialog {
	switch f {
	case domain.FieldHeight:
		return AdviceDialog{
			Field:     f,
			Suggested: domain.SuggestHeight(cfg.RoofAngle),
			Allowed:   domain.AllowedHeights,
			Message:   fmt.Sprintf("Bij een dakhelling van %d° adviseren wij deze kozijnhoogte.", cfg.RoofAngle),
		}
	default:
		return AdviceDialog{
			Field:     f,
			Suggested: domain.SuggestWidth(cfg.WindowCount),
			Allowed:   domain.AllowedWidths,
			Message:   fmt.Sprintf("Voor %d ramen adviseren wij deze breedte.", cfg.WindowCount),
		}
	}
}

// Session is the server-side state of one customer going through a product
// line. The breakdown and the step view are derived, never stored.
type Session struct {
	ID          string               `json:"id"`
	ProductLine string               `json:"productLine"`
	Machine     Machine              `json:"machine"`
	Config      domain.Configuration `json:"config"`
	Pricing     pricing.Snapshot     `json:"pricing"`
	Advice      []AdviceDialog       `json:"advice,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func newSession(id string, line ProductLine, snap pricing.Snapshot, now time.Time) *Session {
	return &Session{
		ID:          id,
		ProductLine: line.ID,
		Machine:     NewMachine(len(line.Steps)),
		Config:      domain.NewConfiguration(),
		Pricing:     snap,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Session) line() ProductLine {
	l, _ := LookupProductLine(s.ProductLine)
	return l
}

func (s *Session) Step() Step { return s.line().Step(s.Machine.Current) }

// Update merges p into the configuration. Every field in p must belong to
// the current step.
func (s *Session) Update(p domain.Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	step := s.Step()
	for _, f := range p.Fields() {
		if !step.Owns(f) {
			return fmt.Errorf("%w: %s", ErrFieldNotInStep, f)
		}
	}

	cfg, advice := s.Config.Apply(p)
	s.Config = cfg

	// a concrete value closes a pending dialog for the same field
	for _, f := range []domain.Field{domain.FieldWidth, domain.FieldHeight} {
		if concrete(p, f) {
			s.dropAdvice(f)
		}
	}
	for _, f := range advice {
		s.dropAdvice(f)
		s.Advice = append(s.Advice, newAdviceDialog(f, cfg))
	}
	return nil
}

func concrete(p domain.Patch, f domain.Field) bool {
	var d *domain.DimensionChoice
	switch f {
	case domain.FieldWidth:
		d = p.Width
	case domain.FieldHeight:
		d = p.Height
	}
	return d != nil && !d.IsAdvice()
}

// ResolveAdvice sets the dimension the customer picked in the dialog.
func (s *Session) ResolveAdvice(f domain.Field, cm int) error {
	if !s.adviceFor(f) {
		return fmt.Errorf("%w: %s", ErrNoAdvicePending, f)
	}
	p := domain.Patch{}
	choice := domain.Concrete(cm)
	switch f {
	case domain.FieldWidth:
		p.Width = &choice
	case domain.FieldHeight:
		p.Height = &choice
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.Config, _ = s.Config.Apply(p)
	s.dropAdvice(f)
	return nil
}

func (s *Session) adviceFor(f domain.Field) bool {
	for _, a := range s.Advice {
		if a.Field == f {
			return true
		}
	}
	return false
}

func (s *Session) dropAdvice(f domain.Field) {
	out := s.Advice[:0]
	for _, a := range s.Advice {
		if a.Field != f {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		out = nil
	}
	s.Advice = out
}

// Next stays put while an advice dialog is open.
func (s *Session) Next() Transition {
	if len(s.Advice) > 0 {
		return Transition{From: s.Machine.Current, To: s.Machine.Current, Blocked: "advice"}
	}
	return s.Machine.Next()
}

// Previous dismisses open advice dialogs; the fields keep their last value.
func (s *Session) Previous() Transition {
	t := s.Machine.Previous()
	if t.ScrollTop {
		s.Advice = nil
	}
	return t
}

// Reset starts over with fresh defaults and keeps the pricing snapshot.
func (s *Session) Reset() Transition {
	s.Config = domain.NewConfiguration()
	s.Advice = nil
	return s.Machine.Reset()
}

func (s *Session) CanRefreshPricing() bool {
	return s.Machine.IsFirst() || s.Pricing.Fallback
}

func (s *Session) Price() pricing.Breakdown {
	return pricing.Compute(s.Config, s.Pricing.Table, s.line().Strategy)
}

// Derived holds values computed from the configuration for display.
type Derived struct {
	WidthBucket     domain.WidthBucket     `json:"widthBucket"`
	RoofAngleBucket domain.RoofAngleBucket `json:"roofAngleBucket"`
	RcValue         float64                `json:"rcValue"`
}

// StepView is what a step screen renders. It is rebuilt on every read.
type StepView struct {
	SessionID       string                    `json:"sessionId"`
	ProductLine     string                    `json:"productLine"`
	Step            int                       `json:"step"`
	TotalSteps      int                       `json:"totalSteps"`
	StepID          StepID                    `json:"stepId"`
	Title           string                    `json:"title"`
	Fields          []domain.Field            `json:"fields"`
	IsFirst         bool                      `json:"isFirst"`
	IsLast          bool                      `json:"isLast"`
	Configuration   domain.Configuration      `json:"configuration"`
	Derived         Derived                   `json:"derived"`
	Choices         map[domain.Field][]Choice `json:"choices"`
	Price           pricing.Breakdown         `json:"price"`
	PricingVersion  int64                     `json:"pricingVersion"`
	PricingFallback bool                      `json:"pricingFallback"`
	Warnings        []domain.Warning          `json:"warnings"`
	Advice          *AdviceDialog             `json:"advice,omitempty"`
	Transition      *Transition               `json:"transition,omitempty"`
}

func (s *Session) View() StepView {
	step := s.Step()
	v := StepView{
		SessionID:     s.ID,
		ProductLine:   s.ProductLine,
		Step:          s.Machine.Current,
		TotalSteps:    s.Machine.Total,
		StepID:        step.ID,
		Title:         step.Title,
		Fields:        step.Fields,
		IsFirst:       s.Machine.IsFirst(),
		IsLast:        s.Machine.IsFinal(),
		Configuration: s.Config,
		Derived: Derived{
			WidthBucket:     s.Config.WidthBucket(),
			RoofAngleBucket: s.Config.RoofAngleBucket(),
			RcValue:         s.Config.Insulation.RcValue(),
		},
		Choices:         make(map[domain.Field][]Choice, len(step.Fields)),
		Price:           s.Price(),
		PricingFallback: s.Pricing.Fallback,
		Warnings:        s.Config.Warnings(),
	}
	if s.Pricing.Table != nil {
		v.PricingVersion = s.Pricing.Table.Version
	}
	for _, f := range step.Fields {
		if c := Choices(f); c != nil {
			v.Choices[f] = c
		}
	}
	if len(s.Advice) > 0 {
		a := s.Advice[0]
		v.Advice = &a
	}
	return v
}

func (s *Session) clone() *Session {
	c := *s
	if s.Advice != nil {
		c.Advice = append([]AdviceDialog(nil), s.Advice...)
	}
	return &c
}
