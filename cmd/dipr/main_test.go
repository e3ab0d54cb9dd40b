package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/dipr/diprtest"
	"github.com/jddeal/go-dipr/geomath"
)

func sampleFile(t *testing.T) []byte {
	t.Helper()
	f := diprtest.New()
	f.Radials = diprtest.UniformRadials(8, 0, 250, 2500)
	return f.MustBytes()
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, sampleFile(t), 0o644))
	return path
}

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(bytes.NewReader(stdin), &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	path := writeSample(t, t.TempDir(), "KGYX.dpr")

	out, err := run(t, nil, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Station Code:        KGYX")
	assert.Contains(t, out, "Max Precip Rate:     2.500 in/hr")
}

func TestInfo_JSONFromStdin(t *testing.T) {
	out, err := run(t, sampleFile(t), "info", "--json", "-")
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &meta))
	assert.Equal(t, "KGYX", meta["station"])
	assert.EqualValues(t, 8, meta["radials"])
}

func TestInfo_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	_, err := run(t, nil, "info", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestGeoJSON_SkipZeros(t *testing.T) {
	tests := map[string]struct {
		args []string
		want int
	}{
		"keeps zeros by default": {args: nil, want: 24},
		"flag skips zeros":       {args: []string{"--skip-zeros"}, want: 16},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, sampleFile(t), append([]string{"geojson"}, tc.args...)...)
			require.NoError(t, err)

			fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
			require.NoError(t, err)
			assert.Len(t, fc.Features, tc.want)
		})
	}
}

func TestGeoJSON_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dipr.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("skipZeros: true\n"), 0o644))

	out, err := run(t, sampleFile(t), "--config", cfgPath, "geojson")
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 16)

	out, err = run(t, sampleFile(t), "--config", cfgPath, "geojson", "--skip-zeros=false")
	require.NoError(t, err)

	fc, err = geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 24)
}

func TestQuery(t *testing.T) {
	p, err := dipr.Decode(sampleFile(t))
	require.NoError(t, err)
	pt := geomath.Destination(p.Location.Orb(), 22.5, 500)

	out, err := run(t, sampleFile(t), "query",
		"--lat", fmt.Sprint(pt.Lat()), "--lon", fmt.Sprint(pt.Lon()))
	require.NoError(t, err)
	assert.Equal(t, "2.500 in/hr (violent)\n", out)
}

func TestQuery_NotCovered(t *testing.T) {
	_, err := run(t, sampleFile(t), "query", "--lat", "0", "--lon", "0")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scan.png")
	_, err := run(t, sampleFile(t), "render", "-s", "32", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestStations(t *testing.T) {
	out, err := run(t, nil, "stations")
	require.NoError(t, err)
	assert.Contains(t, out, "KGYX")

	out, err = run(t, nil, "stations", "--lat", "43.891", "--lon", "-70.257", "--radius", "10")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "KGYX "), out)
}

func TestBatch(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	files := []string{
		writeSample(t, in, "a.dpr"),
		writeSample(t, in, "b.dpr"),
		writeSample(t, in, "c.dpr"),
	}

	_, err := run(t, nil, append([]string{"batch", "--progress=false", "-w", "2", "-o", outDir}, files...)...)
	require.NoError(t, err)

	for _, name := range []string{"a", "b", "c"} {
		data, err := os.ReadFile(filepath.Join(outDir, name+".geojson"))
		require.NoError(t, err)
		fc, err := geojson.UnmarshalFeatureCollection(data)
		require.NoError(t, err)
		assert.Len(t, fc.Features, 16)
	}
}

func TestBatch_PartialFailure(t *testing.T) {
	in, outDir := t.TempDir(), t.TempDir()
	good := writeSample(t, in, "good.dpr")
	bad := filepath.Join(in, "bad.dpr")
	require.NoError(t, os.WriteFile(bad, []byte("junk"), 0o644))

	_, err := run(t, nil, "batch", "--progress=false", "-f", "png", "-s", "16", "-o", outDir, good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.FileExists(t, filepath.Join(outDir, "good.png"))
}

func TestBatch_UnknownFormat(t *testing.T) {
	_, err := run(t, nil, "batch", "-f", "tiff", "x.dpr")
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, sampleFile(t), "--log-level", "loud", "info")
	assert.Error(t, err)
}
