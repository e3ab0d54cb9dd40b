package dipr

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

const (
	descriptionBlock = "product description block"

	blockDivider = -1

	latitudeMin, latitudeMax   = -90_000, 90_000
	longitudeMin, longitudeMax = -180_000, 180_000
)

// ParseOperationalMode converts the wire code into an OperationalMode.
func ParseOperationalMode(code int16) (OperationalMode, error) {
	switch m := OperationalMode(code); m {
	case Maintenance, CleanAir, Precipitation:
		return m, nil
	}
	return 0, fmt.Errorf("%w: expected 0, 1, or 2, but got %d", ErrInvalidOperationalMode, code)
}

// decodeProductDescription parses the Product Description Block. (ICD Figure 3-6, Sheet 6 and Table V)
func decodeProductDescription(c *cursor) (ProductDescription, error) {
	pd := ProductDescription{}
	c.block = descriptionBlock

	divider, err := c.int16()
	if err != nil {
		return pd, err
	}
	if err := checkValue(descriptionBlock, "block divider", divider, blockDivider); err != nil {
		return pd, err
	}

	lat, err := c.int32()
	if err != nil {
		return pd, err
	}
	if err := checkRange(descriptionBlock, "latitude", lat, latitudeMin, latitudeMax); err != nil {
		return pd, err
	}

	lon, err := c.int32()
	if err != nil {
		return pd, err
	}
	if err := checkRange(descriptionBlock, "longitude", lon, longitudeMin, longitudeMax); err != nil {
		return pd, err
	}

	// height of radar and product code
	if err := c.skip(4); err != nil {
		return pd, err
	}

	modeCode, err := c.int16()
	if err != nil {
		return pd, err
	}
	if err := checkRange(descriptionBlock, "operational mode", modeCode, 0, 2); err != nil {
		return pd, err
	}

	// volume coverage pattern through generation time and the first product dependent halfwords
	if err := c.skip(24); err != nil {
		return pd, err
	}

	detected, err := c.int8()
	if err != nil {
		return pd, err
	}
	if err := checkRange(descriptionBlock, "precipitation detected", detected, 0, 1); err != nil {
		return pd, err
	}

	if err := c.skip(43); err != nil {
		return pd, err
	}

	size, err := c.int32()
	if err != nil {
		return pd, err
	}

	// version, spot blank and the block offsets
	if err := c.skip(14); err != nil {
		return pd, err
	}

	mode, err := ParseOperationalMode(modeCode)
	if err != nil {
		return pd, err
	}

	pd.Location = Point{Lon: Degrees(lon) / 1000, Lat: Degrees(lat) / 1000}
	pd.OperationalMode = mode
	pd.PrecipDetected = detected != 0
	pd.UncompressedSize = size

	logrus.Debugf("Product Description lon=%.3f lat=%.3f mode=%s (uncompressed symbology %s bytes)",
		pd.Location.Lon,
		pd.Location.Lat,
		pd.OperationalMode,
		color.CyanString("%d", size),
	)
	return pd, nil
}
