// Package gis converts decoded DPR scans into GIS vector formats.
package gis

import (
	"bufio"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/paulmach/orb/geojson"

	"github.com/jddeal/go-dipr/dipr"
)

// PrecipRateProperty is the feature property holding the bin rate in inches per hour.
const PrecipRateProperty = "precipRate"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	geojson.CustomJSONMarshaler = json
	geojson.CustomJSONUnmarshaler = json
}

// Metadata are the scan level fields added to a feature collection as foreign members.
func Metadata(p *dipr.PrecipRate) geojson.Properties {
	return geojson.Properties{
		"station":         p.StationCode,
		"captureTime":     p.CaptureTime.Format(time.RFC3339),
		"scanNumber":      p.ScanNumber,
		"operationalMode": p.OperationalMode.String(),
		"precipDetected":  p.PrecipDetected,
		"maxPrecipRate":   float64(p.MaxPrecipRate),
		"binSize":         float64(p.BinSize),
		"rangeToFirstBin": float64(p.RangeToFirstBin),
		"location":        []float64{float64(p.Location.Lon), float64(p.Location.Lat)},
	}
}

// Feature converts one bin into a polygon feature.
func Feature(b dipr.Bin) *geojson.Feature {
	f := geojson.NewFeature(b.Polygon())
	f.Properties[PrecipRateProperty] = float64(b.Rate)
	return f
}

// FeatureCollection builds the whole collection in memory.
func FeatureCollection(p *dipr.PrecipRate, skipZeros bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Features = make([]*geojson.Feature, 0, p.BinCount(skipZeros))
	for b := range p.Bins(skipZeros) {
		fc.Append(Feature(b))
	}
	fc.ExtraMembers = Metadata(p)
	return fc
}

// Marshal encodes the feature collection of p.
func Marshal(p *dipr.PrecipRate, skipZeros bool) ([]byte, error) {
	return FeatureCollection(p, skipZeros).MarshalJSON()
}

// WriteGeoJSON streams the feature collection of p to w one feature at a time, so a full scan
// never has to be held as a single document.
func WriteGeoJSON(w io.Writer, p *dipr.PrecipRate, skipZeros bool) error {
	bw := bufio.NewWriter(w)
	stream := json.BorrowStream(bw)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString("FeatureCollection")
	for k, v := range Metadata(p) {
		stream.WriteMore()
		stream.WriteObjectField(k)
		stream.WriteVal(v)
	}
	stream.WriteMore()
	stream.WriteObjectField("features")
	stream.WriteArrayStart()

	first := true
	for b := range p.Bins(skipZeros) {
		if !first {
			stream.WriteMore()
		}
		first = false
		stream.WriteVal(Feature(b))
		if stream.Error != nil {
			return stream.Error
		}
		if stream.Buffered() > 64<<10 {
			if err := stream.Flush(); err != nil {
				return err
			}
		}
	}

	stream.WriteArrayEnd()
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return stream.Error
	}
	if err := stream.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}
