package wizard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
)

func ptr[T any](v T) *T { return &v }

func sessionOn(t *testing.T, lineID string) *Session {
	t.Helper()
	line, ok := LookupProductLine(lineID)
	require.True(t, ok)
	return newSession("s-1", line, pricing.Snapshot{Table: pricing.Fallback(lineID)}, time.Unix(0, 0))
}

func TestSession_RejectsFieldsOfOtherSteps(t *testing.T) {
	s := sessionOn(t, LineCalculator)

	err := s.Update(domain.Patch{Material: ptr(domain.MaterialHout)})
	assert.ErrorIs(t, err, ErrFieldNotInStep)
	assert.Equal(t, domain.MaterialKunststof, s.Config.Material)

	require.NoError(t, s.Update(domain.Patch{Model: ptr(domain.ModelTypeB)}))
	assert.Equal(t, domain.ModelTypeB, s.Config.Model)
}

func TestSession_UpdateIsIdempotent(t *testing.T) {
	s := sessionOn(t, LineCalculator)
	s.Machine.Current = 4 // options

	p := domain.Patch{Options: &domain.OptionsPatch{ElektrischRolluik: ptr(true), Horren: ptr(true)}, WindowCount: ptr(3)}
	require.NoError(t, s.Update(p))
	once := s.Config
	require.NoError(t, s.Update(p))
	assert.Equal(t, once, s.Config)
	assert.True(t, s.Config.Options.RolluikVoorbereiding)
}

func TestSession_InvalidValueIsRejected(t *testing.T) {
	s := sessionOn(t, LineConfigurator)
	err := s.Update(domain.Patch{Width: ptr(domain.Concrete(333))})

	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, domain.FieldWidth, fe.Field)
	assert.Equal(t, domain.DefaultWidth, s.Config.Width)
}

func TestSession_AdviceOpensDialog(t *testing.T) {
	s := sessionOn(t, LineConfigurator)

	require.NoError(t, s.Update(domain.Patch{Width: ptr(domain.Advise())}))
	assert.Equal(t, domain.DefaultWidth, s.Config.Width, "advice is never stored")

	v := s.View()
	require.NotNil(t, v.Advice)
	assert.Equal(t, domain.FieldWidth, v.Advice.Field)
	assert.Equal(t, domain.SuggestWidth(s.Config.WindowCount), v.Advice.Suggested)

	tr := s.Next()
	assert.Equal(t, "advice", tr.Blocked)
	assert.Equal(t, 1, s.Machine.Current)

	require.NoError(t, s.ResolveAdvice(domain.FieldWidth, 400))
	assert.Equal(t, 400, s.Config.Width)
	assert.Nil(t, s.View().Advice)
	assert.True(t, s.Next().ScrollTop)
}

func TestSession_ConcreteValueClosesAdvice(t *testing.T) {
	s := sessionOn(t, LineConfigurator)
	require.NoError(t, s.Update(domain.Patch{Width: ptr(domain.Advise()), Height: ptr(domain.Advise())}))
	require.Len(t, s.Advice, 2)

	require.NoError(t, s.Update(domain.Patch{Height: ptr(domain.Concrete(160))}))
	require.Len(t, s.Advice, 1)
	assert.Equal(t, domain.FieldWidth, s.Advice[0].Field)
	assert.Equal(t, 160, s.Config.Height)
}

func TestSession_ResolveAdviceErrors(t *testing.T) {
	s := sessionOn(t, LineConfigurator)
	assert.ErrorIs(t, s.ResolveAdvice(domain.FieldWidth, 400), ErrNoAdvicePending)

	require.NoError(t, s.Update(domain.Patch{Width: ptr(domain.Advise())}))
	var fe *domain.FieldError
	assert.ErrorAs(t, s.ResolveAdvice(domain.FieldWidth, 410), &fe)
	assert.Len(t, s.Advice, 1)
}

func TestSession_ResetKeepsPricing(t *testing.T) {
	s := sessionOn(t, LineCalculator)
	require.NoError(t, s.Update(domain.Patch{Model: ptr(domain.ModelTypeE)}))
	s.Next()
	table := s.Pricing.Table

	tr := s.Reset()

	assert.True(t, tr.ScrollTop)
	assert.Equal(t, domain.NewConfiguration(), s.Config)
	assert.Equal(t, 1, s.Machine.Current)
	assert.Same(t, table, s.Pricing.Table)
}

func TestSession_RefreshRule(t *testing.T) {
	s := sessionOn(t, LineCalculator)
	assert.True(t, s.CanRefreshPricing())
	s.Next()
	assert.False(t, s.CanRefreshPricing())
	s.Pricing.Fallback = true
	assert.True(t, s.CanRefreshPricing())
}

func TestSession_ViewReflectsConfiguration(t *testing.T) {
	s := sessionOn(t, LineConfigurator)
	s.Machine.Current = 2 // roof
	require.NoError(t, s.Update(domain.Patch{RoofAngle: ptr(20)}))

	v := s.View()
	assert.Equal(t, StepRoof, v.StepID)
	assert.Equal(t, domain.RoofAngleLow, v.Derived.RoofAngleBucket)
	require.Len(t, v.Warnings, 1)
	assert.Equal(t, domain.WarningLowRoofAngle, v.Warnings[0].Code)
	assert.Contains(t, v.Choices, domain.FieldElevation)
	assert.NotContains(t, v.Choices, domain.FieldRoofAngle)
	assert.Equal(t, s.Price(), v.Price)
}

func TestSession_CalculatorScenario(t *testing.T) {
	s := sessionOn(t, LineCalculator)
	require.NoError(t, s.Update(domain.Patch{Model: ptr(domain.ModelTypeC)}))
	s.Next()
	require.NoError(t, s.Update(domain.Patch{Material: ptr(domain.MaterialKunststof)}))

	assert.Equal(t, 9020.0, s.Price().Total)

	s.Next()
	require.NoError(t, s.Update(domain.Patch{Colors: &domain.ColorsPatch{Frame: ptr(domain.ColorAntraciet)}}))
	s.Next()
	require.NoError(t, s.Update(domain.Patch{Options: &domain.OptionsPatch{Ventilatie: ptr(true)}}))

	assert.Equal(t, 9746.0, s.Price().Total)
}

func TestSession_JSONRoundTripKeepsState(t *testing.T) {
	s := sessionOn(t, LineConfigurator)
	require.NoError(t, s.Update(domain.Patch{Width: ptr(domain.Advise())}))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var back Session
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, s.Config, back.Config)
	assert.Equal(t, s.Advice, back.Advice)
	assert.Equal(t, s.Price(), back.Price())
}
