package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewConfiguration_AllFieldsHaveDefaults(t *testing.T) {
	c := NewConfiguration()

	assert.True(t, IsAllowedWidth(c.Width))
	assert.True(t, IsAllowedHeight(c.Height))
	assert.True(t, c.Model.Valid())
	assert.True(t, c.Material.Valid())
	assert.True(t, c.Colors.Frame.Valid())
	assert.True(t, c.Colors.Side.Valid())
	assert.True(t, c.Colors.Sash.Valid())
	assert.True(t, c.FrameHeight.Valid())
	assert.True(t, c.Elevation.Valid())
	assert.True(t, c.Insulation.Valid())
	assert.True(t, c.DeliveryTime.Valid())
	assert.Equal(t, 2, c.WindowCount)
	assert.Empty(t, c.Options.Enabled())
}

func TestApply_IsIdempotent(t *testing.T) {
	p := Patch{
		Model:   ptr(ModelTypeC),
		Colors:  &ColorsPatch{Frame: ptr(ColorAntraciet)},
		Options: &OptionsPatch{Ventilatie: ptr(true)},
		Width:   ptr(Concrete(400)),
	}

	once, _ := NewConfiguration().Apply(p)
	twice, _ := once.Apply(p)

	assert.Equal(t, once, twice)
}

func TestApply_KeepsUntouchedFields(t *testing.T) {
	start, _ := NewConfiguration().Apply(Patch{
		Material: ptr(MaterialHout),
		Options:  &OptionsPatch{Horren: ptr(true), Airco: ptr(true)},
		Colors:   &ColorsPatch{Side: ptr(ColorGrijs)},
	})

	next, _ := start.Apply(Patch{
		Options: &OptionsPatch{Ventilatie: ptr(true)},
		Colors:  &ColorsPatch{Frame: ptr(ColorZwart)},
	})

	assert.Equal(t, MaterialHout, next.Material)
	assert.True(t, next.Options.Horren)
	assert.True(t, next.Options.Airco)
	assert.True(t, next.Options.Ventilatie)
	assert.Equal(t, ColorGrijs, next.Colors.Side)
	assert.Equal(t, ColorZwart, next.Colors.Frame)
	assert.Equal(t, ColorWit, next.Colors.Sash)
}

func TestApply_AdviceIsNeverStored(t *testing.T) {
	c := NewConfiguration()
	got, advice := c.Apply(Patch{Width: ptr(Advise()), Height: ptr(Advise())})

	assert.Equal(t, []Field{FieldWidth, FieldHeight}, advice)
	assert.Equal(t, c.Width, got.Width)
	assert.Equal(t, c.Height, got.Height)
}

func TestApply_ContactMerge(t *testing.T) {
	c, _ := NewConfiguration().Apply(Patch{Contact: &ContactPatch{Name: ptr("Jan"), City: ptr("Utrecht")}})
	c, _ = c.Apply(Patch{Contact: &ContactPatch{Email: ptr("jan@example.nl")}})

	assert.Equal(t, "Jan", c.Contact.Name)
	assert.Equal(t, "Utrecht", c.Contact.City)
	assert.Equal(t, "jan@example.nl", c.Contact.Email)
}

func TestPatch_Validate(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		field Field
	}{
		{"width not allowed", Patch{Width: ptr(Concrete(333))}, FieldWidth},
		{"height not allowed", Patch{Height: ptr(Concrete(155))}, FieldHeight},
		{"roof angle range", Patch{RoofAngle: ptr(95)}, FieldRoofAngle},
		{"unknown model", Patch{Model: ptr(ModelType("typeZ"))}, FieldModel},
		{"unknown material", Patch{Material: ptr(Material("goud"))}, FieldMaterial},
		{"unknown color", Patch{Colors: &ColorsPatch{Sash: ptr(Color("paars"))}}, FieldColors},
		{"window count", Patch{WindowCount: ptr(5)}, FieldWindowCount},
		{"delivery", Patch{DeliveryTime: ptr(DeliveryTime("gisteren"))}, FieldDeliveryTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			require.Error(t, err)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}

	assert.NoError(t, Patch{Width: ptr(Advise()), Model: ptr(ModelTypeB)}.Validate())
}

func TestPatch_Fields(t *testing.T) {
	p := Patch{Model: ptr(ModelTypeB), Options: &OptionsPatch{}}
	assert.Equal(t, []Field{FieldModel, FieldOptions}, p.Fields())
	assert.Empty(t, Patch{}.Fields())
}

func TestPatch_JSON(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"width":"advies","height":160,"options":{"horren":true}}`), &p))

	require.NotNil(t, p.Width)
	assert.True(t, p.Width.IsAdvice())
	h, ok := p.Height.Value()
	require.True(t, ok)
	assert.Equal(t, 160, h)
	require.NotNil(t, p.Options.Horren)
	assert.Nil(t, p.Options.Airco)

	err := json.Unmarshal([]byte(`{"width":"breed"}`), &p)
	assert.Error(t, err)
}

func TestWarnings_LowRoofAngle(t *testing.T) {
	c, _ := NewConfiguration().Apply(Patch{RoofAngle: ptr(20)})
	w := c.Warnings()
	require.Len(t, w, 1)
	assert.Equal(t, WarningLowRoofAngle, w[0].Code)
	assert.Equal(t, RoofAngleLow, c.RoofAngleBucket())

	c, _ = c.Apply(Patch{RoofAngle: ptr(25)})
	assert.Empty(t, c.Warnings())
}
