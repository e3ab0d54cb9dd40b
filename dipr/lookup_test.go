package dipr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jddeal/go-dipr/geomath"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		rate InchesPerHour
		want Intensity
	}{
		{0, IntensityNone},
		{0.001, IntensityLight},
		{0.097, IntensityLight},
		{0.098, IntensityModerate},
		{0.349, IntensityModerate},
		{0.35, IntensityHeavy},
		{1.999, IntensityHeavy},
		{2, IntensityViolent},
		{65.535, IntensityViolent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.rate), "rate %v", tt.rate)
	}
	assert.Equal(t, "moderate", IntensityModerate.String())
}

func TestRateAt(t *testing.T) {
	p := &PrecipRate{
		Location: Point{Lon: -70.257, Lat: 43.891},
		BinSize:  250,
		Radials: []Radial{
			{Azimuth: 45, Width: 1, Rates: []InchesPerHour{0, 1.5, 0.25}},
			{Azimuth: 46, Width: 1, Rates: []InchesPerHour{0, 0.1, 0.2}},
		},
	}
	station := p.Location.Orb()

	tests := []struct {
		name     string
		bearing  float64
		distance float64
		want     InchesPerHour
		ok       bool
	}{
		{"second bin", 45, 250, 1.5, true},
		{"third bin", 45.2, 510, 0.25, true},
		{"neighbouring radial", 45.9, 260, 0.1, true},
		{"beyond last bin", 45, 1000, 0, false},
		{"no radial", 200, 250, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := geomath.Destination(station, tt.bearing, tt.distance)
			rate, ok := p.RateAt(target.Lon(), target.Lat())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rate)
		})
	}
}

func TestRateAt_WrapsAroundNorth(t *testing.T) {
	p := &PrecipRate{
		Location: Point{Lon: -70.257, Lat: 43.891},
		BinSize:  250,
		Radials:  []Radial{{Azimuth: 0, Width: 1, Rates: []InchesPerHour{0, 0.4}}},
	}
	station := p.Location.Orb()

	for _, bearing := range []float64{359.8, 0.2} {
		target := geomath.Destination(station, bearing, 250)
		rate, ok := p.RateAt(target.Lon(), target.Lat())
		assert.True(t, ok, "bearing %v", bearing)
		assert.Equal(t, InchesPerHour(0.4), rate, "bearing %v", bearing)
	}

	target := geomath.Destination(station, 359.2, 250)
	_, ok := p.RateAt(target.Lon(), target.Lat())
	assert.False(t, ok)
}

func TestRateAt_NoBinSize(t *testing.T) {
	p := &PrecipRate{Radials: []Radial{{Azimuth: 0, Width: 360, Rates: []InchesPerHour{1}}}}
	_, ok := p.RateAt(1, 1)
	assert.False(t, ok)
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 1, angleBetween(359.5, 0.5), 1e-9)
	assert.InDelta(t, 180, angleBetween(0, 180), 1e-9)
	assert.InDelta(t, 10, angleBetween(350, 0), 1e-9)
	assert.InDelta(t, 0, angleBetween(720, 0), 1e-9)
}
