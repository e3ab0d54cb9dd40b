package dipr

import (
	"iter"
	"math"

	"github.com/paulmach/orb"

	"github.com/jddeal/go-dipr/geomath"
)

// coincideTolerance is how close, in degrees, two vertices must be to count as the same point.
const coincideTolerance = 1e-9

// Bin is one range bin placed on the globe.
//
// The bins are bounded by circle sectors; Ring approximates that shape with straight edges.
// It holds the distinct vertices only: three for a bin touching the radar, six otherwise.
type Bin struct {
	Radial int           // index into PrecipRate.Radials
	Index  int           // bin index within the radial, increasing range
	Ring   orb.Ring      // distinct vertices, not closed
	Rate   InchesPerHour // precipitation rate of the bin
}

// Polygon returns the bin outline as a closed polygon suitable for GIS output.
func (b Bin) Polygon() orb.Polygon {
	ring := make(orb.Ring, 0, len(b.Ring)+1)
	ring = append(ring, b.Ring...)
	ring = append(ring, b.Ring[0])
	return orb.Polygon{ring}
}

// Bins iterates over every bin of every radial: radials in file order, bins by increasing
// range. With skipZeros bins with no precipitation are left out.
//
// Nothing is cached; ranging over the sequence again recomputes the geometry.
func (p *PrecipRate) Bins(skipZeros bool) iter.Seq[Bin] {
	return func(yield func(Bin) bool) {
		origin := geomath.NewOrigin(float64(p.Location.Lon), float64(p.Location.Lat))
		for ri, radial := range p.Radials {
			for bi, rate := range radial.Rates {
				if skipZeros && rate == 0 {
					continue
				}
				b := Bin{
					Radial: ri,
					Index:  bi,
					Ring:   p.binRing(origin, radial, bi),
					Rate:   rate,
				}
				if !yield(b) {
					return
				}
			}
		}
	}
}

// BinCount is the number of bins Bins would produce.
func (p *PrecipRate) BinCount(skipZeros bool) int {
	n := 0
	for _, radial := range p.Radials {
		if !skipZeros {
			n += len(radial.Rates)
			continue
		}
		for _, rate := range radial.Rates {
			if rate != 0 {
				n++
			}
		}
	}
	return n
}

// binRing computes the outline of bin idx in radial r.
func (p *PrecipRate) binRing(origin geomath.Origin, r Radial, idx int) orb.Ring {
	// inner edge cannot go behind the radar
	inner := math.Max(0, float64(p.RangeToFirstBin)+float64(p.BinSize)*(float64(idx)-0.5))
	outer := float64(p.RangeToFirstBin) + float64(p.BinSize)*(float64(idx)+0.5)

	center := r.Azimuth.Radians()
	left := (r.Azimuth - r.Width/2).Radians()
	right := (r.Azimuth + r.Width/2).Radians()

	centerInner := origin.Destination(center, inner)
	leftInner := origin.Destination(left, inner)
	rightInner := origin.Destination(right, inner)

	rightOuter := origin.Destination(right, outer)
	leftOuter := origin.Destination(left, outer)

	if coincide(centerInner, rightInner) || coincide(centerInner, leftInner) {
		return orb.Ring{centerInner, rightOuter, leftOuter}
	}

	centerOuter := origin.Destination(center, outer)
	return orb.Ring{centerInner, rightInner, rightOuter, centerOuter, leftOuter, leftInner}
}

func coincide(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) <= coincideTolerance && math.Abs(a[1]-b[1]) <= coincideTolerance
}
