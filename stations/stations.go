// Package stations is a read-only table of the WSR-88D radar sites.
package stations

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"github.com/jddeal/go-dipr/geomath"
)

// CoverageRadius is the distance in meters a DPR product reaches from its radar.
const CoverageRadius = 230_000

// ErrNotFound is returned when no station matches.
var ErrNotFound = errors.New("station not found")

// Station is one radar site.
type Station struct {
	Code string  `json:"code"` // four letter ICAO, eg KGYX
	Lon  float64 `json:"lon"`  // degrees
	Lat  float64 `json:"lat"`  // degrees
}

// Point returns the station location.
func (s Station) Point() orb.Point {
	return orb.Point{s.Lon, s.Lat}
}

// Site is the three letter identifier used in file names and bucket keys, eg GYX.
func (s Station) Site() string {
	return SiteID(s.Code)
}

// SiteID strips the leading ICAO region letter from a station code.
func SiteID(code string) string {
	code = strings.ToUpper(code)
	if len(code) == 4 {
		return code[1:]
	}
	return code
}

// Match is a station and its distance from a query point.
type Match struct {
	Station
	Distance float64 `json:"distance"` // meters
}

// Lookup finds stations.
type Lookup interface {
	Station(code string) (Station, error)
	Nearest(lon, lat, maxMeters float64) ([]Match, error)
	All() []Station
}

// Table is a Lookup over a fixed slice of stations.
type Table struct {
	stations []Station
	byCode   map[string]Station
}

// Default is the table of WSR-88D sites that publish DPR.
var Default = NewTable(wsr88d)

// NewTable indexes stations. The slice is copied.
func NewTable(stations []Station) *Table {
	t := &Table{
		stations: append([]Station(nil), stations...),
		byCode:   make(map[string]Station, len(stations)),
	}
	for _, s := range t.stations {
		t.byCode[s.Code] = s
	}
	return t
}

// Station looks up a station by its four letter code, or its three letter site id when that is
// unambiguous.
func (t *Table) Station(code string) (Station, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := t.byCode[code]; ok {
		return s, nil
	}
	if len(code) == 3 {
		var found []Station
		for _, s := range t.stations {
			if s.Site() == code {
				found = append(found, s)
			}
		}
		if len(found) == 1 {
			return found[0], nil
		}
	}
	return Station{}, fmt.Errorf("%w: %q", ErrNotFound, code)
}

// Nearest returns every station within maxMeters of the point, closest first. A maxMeters of
// zero or less means CoverageRadius.
func (t *Table) Nearest(lon, lat, maxMeters float64) ([]Match, error) {
	if maxMeters <= 0 {
		maxMeters = CoverageRadius
	}
	p := orb.Point{lon, lat}

	var matches []Match
	for _, s := range t.stations {
		d := geomath.Distance(p, s.Point())
		if d < maxMeters {
			matches = append(matches, Match{Station: s, Distance: d})
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no radar within %.0f km of %.4f, %.4f", ErrNotFound, maxMeters/1000, lat, lon)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches, nil
}

// All returns a copy of every station, in table order.
func (t *Table) All() []Station {
	return append([]Station(nil), t.stations...)
}
