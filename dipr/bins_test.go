package dipr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jddeal/go-dipr/geomath"
)

func singleRadial(az, width Degrees, binSize, rangeToFirst Meters, rates ...InchesPerHour) *PrecipRate {
	return &PrecipRate{
		StationCode:     "KGYX",
		Location:        Point{Lon: -70.257, Lat: 43.891},
		BinSize:         binSize,
		RangeToFirstBin: rangeToFirst,
		Radials: []Radial{
			{Azimuth: az, Width: width, Elevation: 0.5, Rates: rates},
		},
	}
}

func collect(p *PrecipRate, skipZeros bool) []Bin {
	var bins []Bin
	for b := range p.Bins(skipZeros) {
		bins = append(bins, b)
	}
	return bins
}

func TestBins_FirstBinTouchingRadarIsTriangle(t *testing.T) {
	p := singleRadial(90, 2, 1000, 0, 1.25)
	bins := collect(p, false)
	require.Len(t, bins, 1)

	b := bins[0]
	assert.Equal(t, 0, b.Radial)
	assert.Equal(t, 0, b.Index)
	assert.Equal(t, InchesPerHour(1.25), b.Rate)
	require.Len(t, b.Ring, 3)

	origin := p.Location.Orb()
	inner := geomath.Distance(origin, b.Ring[0])
	for _, outer := range b.Ring[1:] {
		assert.Greater(t, geomath.Distance(origin, outer), inner)
		assert.InDelta(t, 500, geomath.Distance(origin, outer), 0.5)
	}

	// right of the radial is clockwise, so further along at azimuth 90
	assert.InDelta(t, 91, geomath.Bearing(origin, b.Ring[1]), 1e-6)
	assert.InDelta(t, 89, geomath.Bearing(origin, b.Ring[2]), 1e-6)
}

func TestBins_HexagonVertexOrder(t *testing.T) {
	p := singleRadial(90, 2, 1000, 0, 0, 3)
	bins := collect(p, false)
	require.Len(t, bins, 2)

	b := bins[1]
	require.Len(t, b.Ring, 6)
	origin := p.Location.Orb()

	want := []struct {
		bearing  float64
		distance float64
	}{
		{90, 500},
		{91, 500},
		{91, 1500},
		{90, 1500},
		{89, 1500},
		{89, 500},
	}
	for i, w := range want {
		assert.InDelta(t, w.bearing, geomath.Bearing(origin, b.Ring[i]), 1e-6, "vertex %d", i)
		assert.InDelta(t, w.distance, geomath.Distance(origin, b.Ring[i]), 0.5, "vertex %d", i)
	}
}

func TestBins_OffsetRangeGivesHexagons(t *testing.T) {
	p := singleRadial(180, 1, 250, 2125, 1, 2, 3)
	for b := range p.Bins(false) {
		assert.Len(t, b.Ring, 6)
		origin := p.Location.Orb()
		assert.Greater(t, geomath.Distance(origin, b.Ring[3]), geomath.Distance(origin, b.Ring[0]))
	}
}

func TestBins_ZeroWidthRadialIsTriangle(t *testing.T) {
	p := singleRadial(45, 0, 250, 1000, 1)
	bins := collect(p, false)
	require.Len(t, bins, 1)
	assert.Len(t, bins[0].Ring, 3)
}

func TestBins_SkipZeros(t *testing.T) {
	p := singleRadial(10, 1, 250, 0, 0, 0.5, 0, 0.75)
	p.Radials = append(p.Radials, Radial{Azimuth: 11, Width: 1, Rates: []InchesPerHour{0, 0, 2}})

	all := collect(p, false)
	assert.Len(t, all, 7)
	assert.Equal(t, 7, p.BinCount(false))

	nonZero := collect(p, true)
	require.Len(t, nonZero, 3)
	assert.Equal(t, 3, p.BinCount(true))

	assert.Equal(t, [2]int{0, 1}, [2]int{nonZero[0].Radial, nonZero[0].Index})
	assert.Equal(t, [2]int{0, 3}, [2]int{nonZero[1].Radial, nonZero[1].Index})
	assert.Equal(t, [2]int{1, 2}, [2]int{nonZero[2].Radial, nonZero[2].Index})
	for _, b := range nonZero {
		assert.NotZero(t, b.Rate)
	}
}

func TestBins_StopEarly(t *testing.T) {
	p := singleRadial(10, 1, 250, 0, 1, 2, 3, 4, 5)
	n := 0
	for range p.Bins(false) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestBins_Restartable(t *testing.T) {
	p := singleRadial(10, 1, 250, 0, 1, 2, 3)
	assert.Equal(t, collect(p, false), collect(p, false))
}

func TestBin_PolygonIsClosed(t *testing.T) {
	p := singleRadial(300, 1, 250, 0, 1, 2)
	for b := range p.Bins(false) {
		poly := b.Polygon()
		require.Len(t, poly, 1)
		ring := poly[0]
		assert.Len(t, ring, len(b.Ring)+1)
		assert.True(t, ring.Closed())
	}
}

func TestBins_AntimeridianLongitudesNormalized(t *testing.T) {
	p := singleRadial(90, 1, 1000, 0, 1, 1)
	p.Location = Point{Lon: 179.999, Lat: 0}
	for b := range p.Bins(false) {
		for _, pt := range b.Ring {
			assert.LessOrEqual(t, pt.Lon(), 180.0)
			assert.Greater(t, pt.Lon(), -180.0)
		}
	}
}
