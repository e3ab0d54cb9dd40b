// Package shapefile writes DPR bins as an ESRI Shapefile through GDAL/OGR.
//
// Building this package needs the GDAL development headers (cgo).
package shapefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lukeroth/gdal"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/gis"
)

const (
	driverName = "ESRI Shapefile"

	// WGS 84
	epsgWGS84 = 4326
)

// ErrDriver is returned when GDAL was built without the shapefile driver.
var ErrDriver = errors.New("ogr driver unavailable")

// Write creates a polygon shapefile at path with one feature per bin and a real valued
// precipRate attribute. The .shp, .shx, .dbf and .prj files are written next to each other.
func Write(path string, p *dipr.PrecipRate, skipZeros bool) error {
	driver := gdal.OGRDriverByName(driverName)
	ds, ok := driver.Create(path, nil)
	if !ok {
		return fmt.Errorf("%w: cannot create %s with %s", ErrDriver, path, driverName)
	}
	defer ds.Destroy()

	sr := gdal.CreateSpatialReference("")
	defer sr.Destroy()
	if err := sr.FromEPSG(epsgWGS84); err != nil {
		return fmt.Errorf("spatial reference: %w", err)
	}

	layer := ds.CreateLayer(layerName(path), sr, gdal.GT_Polygon, nil)

	field := gdal.CreateFieldDefinition(gis.PrecipRateProperty, gdal.FT_Real)
	defer field.Destroy()
	if err := layer.CreateField(field, true); err != nil {
		return fmt.Errorf("create field: %w", err)
	}

	count := 0
	for b := range p.Bins(skipZeros) {
		if err := writeBin(layer, sr, b); err != nil {
			return fmt.Errorf("radial %d bin %d: %w", b.Radial, b.Index, err)
		}
		count++
	}
	logrus.Debugf("Wrote %d features to %s", count, path)
	return nil
}

func writeBin(layer gdal.Layer, sr gdal.SpatialReference, b dipr.Bin) error {
	feature := layer.Definition().Create()
	defer feature.Destroy()

	feature.SetFieldFloat64(0, float64(b.Rate))

	geom, err := gdal.CreateFromWKT(wkt.MarshalString(b.Polygon()), sr)
	if err != nil {
		return err
	}
	if err := feature.SetGeometryDirectly(geom); err != nil {
		return err
	}
	return layer.Create(feature)
}

// layerName is the file name without directory or extension, as OGR names shapefile layers.
func layerName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
