package dipr

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

const (
	symbologyBlock = "product symbology"

	scanNumberMin, scanNumberMax = 1, 80
	radialComponentType          = 1
	binSizeMin, binSizeMax       = 0, 1000
	numRadialsMin, numRadialsMax = 0, 800

	// The ICD documents 1000..460000 m for the range to the first bin, but real DPR files fall
	// outside it, so that field is only checked for being finite.
)

// decodeProductSymbology parses the decompressed Product Symbology Block, the Product Description
// Data Structure that opens it and the single Radial Component that follows.
func decodeProductSymbology(c *cursor) (ProductSymbology, error) {
	ps := ProductSymbology{}
	c.block = symbologyBlock

	// header (Figure 3-6, Sheet 7) then the generic product header (Figure 3-15c)
	if err := c.skip(16 + 8); err != nil {
		return ps, err
	}

	// Product Description Data Structure (Figure E-1)
	name, err := c.string()
	if err != nil {
		return ps, err
	}
	description, err := c.string()
	if err != nil {
		return ps, err
	}
	if err := c.skip(12); err != nil {
		return ps, err
	}
	radarName, err := c.string()
	if err != nil {
		return ps, err
	}
	if err := c.skip(12); err != nil {
		return ps, err
	}
	logrus.Tracef("  Symbology %q (%s) from radar %q", name, description, radarName)

	rawTime, err := c.uint32()
	if err != nil {
		return ps, err
	}
	if err := c.skip(8); err != nil {
		return ps, err
	}

	scanNumber, err := c.int32()
	if err != nil {
		return ps, err
	}
	if err := checkRange(symbologyBlock, "scan number", scanNumber, scanNumberMin, scanNumberMax); err != nil {
		return ps, err
	}
	if err := c.skip(24); err != nil {
		return ps, err
	}

	components, err := c.int32()
	if err != nil {
		return ps, err
	}
	if components != 1 {
		return ps, &UnsupportedError{Reason: fmt.Sprintf(
			"found number of components in product symbology not equal to 1 (got %d); DPR files containing multiple components are not supported",
			components,
		)}
	}
	// component offsets
	if err := c.skip(int(components) * 8); err != nil {
		return ps, err
	}

	// Radial Component Data Structure (Figure E-3)
	componentType, err := c.int32()
	if err != nil {
		return ps, err
	}
	if err := checkValue(symbologyBlock, "radial component type", componentType, radialComponentType); err != nil {
		return ps, err
	}
	if _, err := c.string(); err != nil {
		return ps, err
	}

	binSize, err := c.float32()
	if err != nil {
		return ps, err
	}
	if err := checkRange(symbologyBlock, "bin size", binSize, binSizeMin, binSizeMax); err != nil {
		return ps, err
	}

	rangeToFirstBin, err := c.float32()
	if err != nil {
		return ps, err
	}
	if err := checkFinite(symbologyBlock, "range to first bin", rangeToFirstBin); err != nil {
		return ps, err
	}
	if err := c.skip(8); err != nil {
		return ps, err
	}

	numRadials, err := c.int32()
	if err != nil {
		return ps, err
	}
	if err := checkRange(symbologyBlock, "num radials", numRadials, numRadialsMin, numRadialsMax); err != nil {
		return ps, err
	}
	logrus.Debugf("Product Symbology scan=%d bin size=%.0f m range to first bin=%.0f m radials=%s",
		scanNumber, binSize, rangeToFirstBin, color.CyanString("%d", numRadials))

	ps.Radials = make([]Radial, 0, numRadials)
	for i := int32(0); i < numRadials; i++ {
		r, err := decodeRadial(c)
		if err != nil {
			return ps, fmt.Errorf("radial %d: %w", i, err)
		}
		ps.Radials = append(ps.Radials, r)
	}

	captureTime, err := captureTimeFromUnix(rawTime)
	if err != nil {
		return ps, err
	}

	ps.BinSize = Meters(binSize)
	ps.RangeToFirstBin = Meters(rangeToFirstBin)
	ps.ScanNumber = uint8(scanNumber)
	ps.CaptureTime = captureTime
	return ps, nil
}

// captureTimeFromUnix converts the volume scan start time, seconds since the Unix epoch.
func captureTimeFromUnix(raw uint32) (time.Time, error) {
	t := time.Unix(int64(raw), 0).UTC()
	if t.Unix() != int64(raw) || t.Year() > 9999 {
		return time.Time{}, &CaptureTimeError{Raw: raw}
	}
	return t, nil
}
