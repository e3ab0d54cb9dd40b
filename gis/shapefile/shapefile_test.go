package shapefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lukeroth/gdal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jddeal/go-dipr/dipr"
)

func TestWrite(t *testing.T) {
	p := &dipr.PrecipRate{
		StationCode: "KGYX",
		Location:    dipr.Point{Lon: -70.257, Lat: 43.891},
		BinSize:     250,
		Radials: []dipr.Radial{
			{Azimuth: 0.5, Width: 1, Rates: []dipr.InchesPerHour{0, 0.5, 2.5}},
			{Azimuth: 1.5, Width: 1, Rates: []dipr.InchesPerHour{0.1, 0, 0}},
		},
	}
	path := filepath.Join(t.TempDir(), "kgyx.shp")

	require.NoError(t, Write(path, p, true))
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		_, err := os.Stat(path[:len(path)-4] + ext)
		assert.NoError(t, err, ext)
	}

	ds := gdal.OpenDataSource(path, 0)
	defer ds.Destroy()

	layer := ds.LayerByIndex(0)
	count, ok := layer.FeatureCount(true)
	require.True(t, ok)
	assert.Equal(t, 3, count)

	assert.Equal(t, 0, layer.Definition().FieldIndex("precipRate"))
}

func TestLayerName(t *testing.T) {
	assert.Equal(t, "kgyx", layerName("/tmp/out/kgyx.shp"))
	assert.Equal(t, "scan", layerName("scan"))
}
