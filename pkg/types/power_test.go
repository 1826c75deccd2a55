package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMilliwatts_Humanized(t *testing.T) {
	assert.Equal(t, "0.695 mW", Milliwatts(0.695).Humanized())
	assert.Equal(t, "600.000 mW", Milliwatts(600).Humanized())
	assert.Equal(t, "7.00 W", Milliwatts(7000).Humanized())
	assert.Equal(t, "14.00 W", Milliwatts(14000).Humanized())
	assert.Equal(t, "1.50 kW", Milliwatts(1.5e6).Humanized())
	assert.Equal(t, "-7.00 W", Milliwatts(-7000).Humanized())
}

func TestMilliwatts_Conversions(t *testing.T) {
	assert.Equal(t, 7.0, Milliwatts(7000).W())
	assert.Equal(t, 0.007, Milliwatts(7000).KW())
}

func TestMilliwattHours_Humanized(t *testing.T) {
	assert.Equal(t, "84.167 mWh", MilliwattHours(84.167).Humanized())
	assert.Equal(t, "9.56 Wh", MilliwattHours(9563.3).Humanized())
	assert.Equal(t, "1.20 kWh", MilliwattHours(1.2e6).Humanized())
}

func TestMilliwattHours_Conversions(t *testing.T) {
	assert.Equal(t, 77.0, MilliwattHours(77000).Wh())
	assert.Equal(t, 0.077, MilliwattHours(77000).KWh())
}
