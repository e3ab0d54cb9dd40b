// Package geomath holds the spherical earth formulas used to place radar bins on the globe.
//
// Math from http://www.movable-type.co.uk/scripts/latlong.html. Points are orb.Point values,
// longitude first, in degrees.
package geomath

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadius is the mean earth radius in meters (IUGG).
const EarthRadius = 6371008.8

// smallAngle is the largest |y/x| for which atan(y/x) is replaced by y/x in Destination. The
// error is within 0.01% there.
const smallAngle = 0.017322

// Origin caches the trigonometry of a fixed starting point so many destinations can be computed
// from it cheaply.
type Origin struct {
	lonRad float64
	latRad float64
	sinLat float64
	cosLat float64
}

// NewOrigin returns an Origin at the given longitude and latitude in degrees.
func NewOrigin(lon, lat float64) Origin {
	latRad := toRadians(lat)
	return Origin{
		lonRad: toRadians(lon),
		latRad: latRad,
		sinLat: math.Sin(latRad),
		cosLat: math.Cos(latRad),
	}
}

// Point returns the origin itself.
func (o Origin) Point() orb.Point {
	return orb.Point{toDegrees(o.lonRad), toDegrees(o.latRad)}
}

// Destination travels meters along the great circle leaving the origin at bearingRad (radians
// clockwise from north).
func (o Origin) Destination(bearingRad, meters float64) orb.Point {
	delta := meters / EarthRadius
	sinDelta, cosDelta := math.Sincos(delta)

	lat := math.Asin(o.sinLat*cosDelta + o.cosLat*sinDelta*math.Cos(bearingRad))

	y := math.Sin(bearingRad) * sinDelta * o.cosLat
	x := cosDelta - o.sinLat*math.Sin(lat)

	var dLon float64
	if ratio := y / x; x > 0 && math.Abs(ratio) < smallAngle {
		dLon = ratio
	} else {
		dLon = math.Atan2(y, x)
	}

	return orb.Point{NormalizeLongitude(toDegrees(o.lonRad + dLon)), toDegrees(lat)}
}

// Destination is the one-off version of Origin.Destination with the bearing in degrees.
func Destination(start orb.Point, bearing, meters float64) orb.Point {
	return NewOrigin(start.Lon(), start.Lat()).Destination(toRadians(bearing), meters)
}

// Distance is the haversine great-circle distance between a and b in meters.
func Distance(a, b orb.Point) float64 {
	lat1, lat2 := toRadians(a.Lat()), toRadians(b.Lat())
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon() - a.Lon())

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing is the initial bearing from a to b in degrees, in [0, 360).
func Bearing(a, b orb.Point) float64 {
	lat1, lat2 := toRadians(a.Lat()), toRadians(b.Lat())
	dLon := toRadians(b.Lon() - a.Lon())

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(toDegrees(math.Atan2(y, x))+360, 360)
}

// NormalizeLongitude wraps lon into (-180, 180].
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return lon
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
