package dipr

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/jddeal/go-dipr/geomath"
)

// Intensity is the qualitative class of a precipitation rate.
type Intensity int

const (
	IntensityNone Intensity = iota
	IntensityLight
	IntensityModerate
	IntensityHeavy
	IntensityViolent
)

var intensityNames = map[Intensity]string{
	IntensityNone:     "none",
	IntensityLight:    "light",
	IntensityModerate: "moderate",
	IntensityHeavy:    "heavy",
	IntensityViolent:  "violent",
}

func (i Intensity) String() string {
	if name, ok := intensityNames[i]; ok {
		return name
	}
	return "unknown"
}

// Classify buckets a rate by the usual rainfall intensity thresholds.
func Classify(rate InchesPerHour) Intensity {
	switch {
	case rate <= 0:
		return IntensityNone
	case rate < 0.098:
		return IntensityLight
	case rate < 0.35:
		return IntensityModerate
	case rate < 2:
		return IntensityHeavy
	}
	return IntensityViolent
}

// RateAt returns the rate of the bin covering the given point. ok is false when the point is
// outside every radial or beyond the last bin.
func (p *PrecipRate) RateAt(lon, lat float64) (rate InchesPerHour, ok bool) {
	if p.BinSize <= 0 {
		return 0, false
	}
	station := p.Location.Orb()
	target := orb.Point{lon, lat}

	distance := geomath.Distance(station, target)
	bearing := geomath.Bearing(station, target)

	radial, found := p.radialAt(bearing)
	if !found {
		return 0, false
	}

	idx := int(math.Round((distance - float64(p.RangeToFirstBin)) / float64(p.BinSize)))
	if idx < 0 || idx >= len(radial.Rates) {
		return 0, false
	}
	return radial.Rates[idx], true
}

// radialAt finds the radial whose sector holds bearing. When sectors overlap the one whose
// center is closest wins.
func (p *PrecipRate) radialAt(bearing float64) (Radial, bool) {
	best := -1
	bestDiff := math.Inf(1)
	for i, r := range p.Radials {
		diff := angleBetween(bearing, float64(r.Azimuth))
		if diff <= float64(r.Width)/2 && diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return Radial{}, false
	}
	return p.Radials[best], true
}

// angleBetween is the smallest difference between two bearings in degrees, in [0, 180].
func angleBetween(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
