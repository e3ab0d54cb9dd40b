// Package render rasterizes a DPR scan into an image, one filled polygon per bin.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/paulmach/orb"
	"golang.org/x/image/colornames"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/geomath"
)

// MaxSize bounds the edge length of rendered images.
const MaxSize = 4096

// Step colours every rate below Below that is not caught by an earlier step.
type Step struct {
	Below dipr.InchesPerHour
	Color color.RGBA
}

// Palette maps rates to colours, from light green drizzle up to magenta.
var Palette = []Step{
	{0.01, colornames.Palegreen},
	{0.05, colornames.Lightgreen},
	{0.098, colornames.Limegreen},
	{0.2, colornames.Green},
	{0.35, colornames.Yellow},
	{0.6, colornames.Gold},
	{1, colornames.Orange},
	{2, colornames.Red},
	{4, colornames.Darkred},
}

// Extreme is used for rates above the last palette step.
var Extreme = colornames.Magenta

// ColorFor returns the colour of a rate. Zero is transparent.
func ColorFor(rate dipr.InchesPerHour) color.RGBA {
	if rate <= 0 {
		return color.RGBA{}
	}
	for _, s := range Palette {
		if rate < s.Below {
			return s.Color
		}
	}
	return Extreme
}

// Bounds is the region covered by the scan: the station plus the reach of the longest
// radial in every direction.
func Bounds(p *dipr.PrecipRate) orb.Bound {
	reach := float64(p.RangeToFirstBin)
	for _, r := range p.Radials {
		reach = max(reach, float64(p.RangeToFirstBin)+float64(p.BinSize)*(float64(len(r.Rates))+0.5))
	}
	if reach <= 0 {
		reach = float64(p.BinSize)
	}

	o := geomath.NewOrigin(float64(p.Location.Lon), float64(p.Location.Lat))
	b := orb.Bound{Min: o.Point(), Max: o.Point()}
	for _, bearing := range []float64{0, 90, 180, 270} {
		b = b.Extend(o.Destination(bearing*math.Pi/180, reach))
	}
	return b
}

// Image draws the scan on a transparent size by size canvas in an equirectangular projection.
func Image(p *dipr.PrecipRate, size int) (*image.RGBA, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("image size %d outside 1..%d", size, MaxSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gc := draw2dimg.NewGraphicContext(img)

	bound := Bounds(p)
	width, height := bound.Max.Lon()-bound.Min.Lon(), bound.Max.Lat()-bound.Min.Lat()
	if width <= 0 || height <= 0 {
		return img, nil
	}
	toPixel := func(pt orb.Point) (float64, float64) {
		x := (pt.Lon() - bound.Min.Lon()) / width * float64(size)
		y := (bound.Max.Lat() - pt.Lat()) / height * float64(size)
		return x, y
	}

	for b := range p.Bins(true) {
		gc.SetFillColor(ColorFor(b.Rate))
		gc.BeginPath()
		for i, pt := range b.Ring {
			x, y := toPixel(pt)
			if i == 0 {
				gc.MoveTo(x, y)
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Close()
		gc.Fill()
	}
	return img, nil
}

// PNG renders the scan and encodes it to w.
func PNG(w io.Writer, p *dipr.PrecipRate, size int) error {
	img, err := Image(p, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
