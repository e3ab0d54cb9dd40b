// Package dipr provides structs and functions for decoding the NEXRAD Level III Digital
// Instantaneous Precipitation Rate product (DIPR, product code 176) and projecting its range
// bins onto the globe.
//
// The documents used and referenced in this package:
//   - ICD: https://www.roc.noaa.gov/public-documents/icds/2620001T.pdf (Product Specification ICD)
//   - Station list: https://www.weather.gov/media/tg/wsr88d-radar-list.pdf
package dipr

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

const (
	// ProductCode of the Digital Instantaneous Precipitation Rate product
	ProductCode = 176

	textHeaderLength    = 30
	messageHeaderLength = 18

	// ProductDescriptionLength is the size of the fixed product description block (ICD Table V)
	ProductDescriptionLength = 102
)

// Degrees of arc.
type Degrees float64

// Radians converts the angle to radians.
func (d Degrees) Radians() float64 {
	return float64(d) * math.Pi / 180
}

// Meters of distance.
type Meters float64

// InchesPerHour is a precipitation rate, the depth of rain accumulated in one hour.
type InchesPerHour float64

// OperationalMode of the radar station (ICD Table V, halfword 17)
type OperationalMode int16

const (
	Maintenance   OperationalMode = 0
	CleanAir      OperationalMode = 1
	Precipitation OperationalMode = 2
)

func (m OperationalMode) String() string {
	switch m {
	case Maintenance:
		return "Maintenance"
	case CleanAir:
		return "Clean Air"
	case Precipitation:
		return "Precipitation"
	}
	return "Unknown"
}

// Point is a longitude/latitude pair. Longitude comes first so that X is the horizontal axis,
// matching orb and GeoJSON.
type Point struct {
	Lon Degrees
	Lat Degrees
}

// Orb returns the point as an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{float64(p.Lon), float64(p.Lat)}
}

// ProductDescription holds the parts of the product description block this package uses.
// (ICD Figure 3-6, Sheet 6 and Table V)
type ProductDescription struct {
	Location         Point           // radar location, fixed-point thousandths of a degree on the wire
	OperationalMode  OperationalMode // station operating condition
	PrecipDetected   bool            // precipitation detected anywhere in the coverage area
	UncompressedSize int32           // declared size of the decompressed symbology in bytes
}

// ProductSymbology holds the decoded Product Symbology Block and its radial component.
// (ICD Figure 3-6, Sheet 7 and Figures E-1 through E-4)
type ProductSymbology struct {
	BinSize         Meters    // radial length of one range bin
	RangeToFirstBin Meters    // distance from the radar to the center of the first bin
	ScanNumber      uint8     // volume scan number, 1 through 80
	CaptureTime     time.Time // volume scan start time
	Radials         []Radial
}

// Radial is one angular sector of the scan. (ICD Figure E-4)
type Radial struct {
	Azimuth   Degrees         // center azimuth, 0 through 360
	Elevation Degrees         // elevation angle, -1 through 45
	Width     Degrees         // angular width, 0 through 2
	Rates     []InchesPerHour // one sample per bin in increasing range
}

// PrecipRate is the decoded DIPR product.
//
// Create it with Decode.
type PrecipRate struct {
	StationCode     string          // four letter ICAO, eg KGYX
	CaptureTime     time.Time       // moment the volume scan began
	ScanNumber      uint8           // incrementing counter, 1 through 80
	Location        Point           // radar station location
	OperationalMode OperationalMode // condition of the radar station
	PrecipDetected  bool            // whether the station measured precipitation anywhere
	MaxPrecipRate   InchesPerHour   // highest rate found in any bin
	BinSize         Meters          // radial length of each bin
	RangeToFirstBin Meters          // distance from the station to the center of the nearest bin
	Radials         []Radial
}
