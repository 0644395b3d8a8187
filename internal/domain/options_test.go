package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_SetGetCoversEveryKey(t *testing.T) {
	for _, k := range OptionKeys {
		o := Options{}.Set(k, true)
		assert.True(t, o.Get(k), k)
		assert.Equal(t, []OptionKey{k}, o.Enabled(), k)
		assert.NotEqual(t, string(k), k.Label(), "label for %s", k)
	}
}

func TestOptions_UnknownKey(t *testing.T) {
	o := Options{}.Set("bestaat_niet", true)
	assert.Equal(t, Options{}, o)
	assert.False(t, o.Get("bestaat_niet"))
	assert.False(t, OptionKey("bestaat_niet").Valid())
}

func TestOptions_ShutterImpliesPrep(t *testing.T) {
	o := Options{}.Merge(OptionsPatch{ElektrischRolluik: ptr(true)})

	assert.True(t, o.ElektrischRolluik)
	assert.True(t, o.RolluikVoorbereiding)
	assert.True(t, o.PriceWaived(OptRolluikVoorbereiding))
	assert.False(t, o.PriceWaived(OptElektrischRolluik))
}

func TestOptions_PrepCannotBeDroppedWhileShutterOn(t *testing.T) {
	o := Options{}.Merge(OptionsPatch{ElektrischRolluik: ptr(true)})
	o = o.Merge(OptionsPatch{RolluikVoorbereiding: ptr(false)})

	assert.True(t, o.RolluikVoorbereiding)
}

func TestOptions_PrepStaysWhenShutterRemoved(t *testing.T) {
	o := Options{}.Merge(OptionsPatch{ElektrischRolluik: ptr(true)})
	o = o.Merge(OptionsPatch{ElektrischRolluik: ptr(false)})

	assert.False(t, o.ElektrischRolluik)
	assert.True(t, o.RolluikVoorbereiding)
	assert.False(t, o.PriceWaived(OptRolluikVoorbereiding))
}

func TestOptionsPatch_Empty(t *testing.T) {
	assert.True(t, OptionsPatch{}.Empty())
	assert.False(t, OptionsPatch{Airco: ptr(false)}.Empty())
}

func TestOptions_FieldPointsIntoReceiver(t *testing.T) {
	var o Options
	for _, k := range OptionKeys {
		f := o.Field(k)
		require.NotNil(t, f, k)
		*f = true
		assert.True(t, o.Get(k), k)
	}
	assert.Len(t, o.Enabled(), len(OptionKeys))
	assert.Nil(t, o.Field("dakgoot"))
}
