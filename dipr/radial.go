package dipr

import (
	"encoding/binary"
	"fmt"
)

const (
	radialBlock = "radial"

	azimuthMin, azimuthMax     = 0, 360
	elevationMin, elevationMax = -1, 45
	widthMin, widthMax         = 0, 2
	numBinsMin, numBinsMax     = 0, 1840

	// sampleSlotSize is the width of one bin on the wire; only the trailing two bytes hold data.
	sampleSlotSize = 4
)

// decodeRadial parses one Radial Information Data Structure. (ICD Figure E-4)
func decodeRadial(c *cursor) (Radial, error) {
	r := Radial{}

	azimuth, err := c.float32()
	if err != nil {
		return r, err
	}
	if err := checkRange(radialBlock, "azimuth", azimuth, azimuthMin, azimuthMax); err != nil {
		return r, err
	}

	elevation, err := c.float32()
	if err != nil {
		return r, err
	}
	if err := checkRange(radialBlock, "elevation", elevation, elevationMin, elevationMax); err != nil {
		return r, err
	}

	width, err := c.float32()
	if err != nil {
		return r, err
	}
	if err := checkRange(radialBlock, "width", width, widthMin, widthMax); err != nil {
		return r, err
	}

	numBins, err := c.int32()
	if err != nil {
		return r, err
	}
	if err := checkRange(radialBlock, "num bins", numBins, numBinsMin, numBinsMax); err != nil {
		return r, err
	}

	// attributes
	if _, err := c.string(); err != nil {
		return r, err
	}
	if err := c.skip(4); err != nil {
		return r, err
	}

	samples, err := c.take(int(numBins) * sampleSlotSize)
	if err != nil {
		return r, err
	}
	r.Rates = make([]InchesPerHour, numBins)
	for i := range r.Rates {
		raw, err := sampleValue(samples[i*sampleSlotSize : (i+1)*sampleSlotSize])
		if err != nil {
			return r, err
		}
		r.Rates[i] = rateFromRaw(raw)
	}

	r.Azimuth = Degrees(azimuth)
	r.Elevation = Degrees(elevation)
	r.Width = Degrees(width)
	return r, nil
}

// sampleValue reads the big-endian uint16 from the last two bytes of a sample slot.
func sampleValue(slot []byte) (uint16, error) {
	if len(slot) != sampleSlotSize {
		return 0, fmt.Errorf("%w: sample slot is %d bytes, expected %d", ErrInvalidFixedWidthSlice, len(slot), sampleSlotSize)
	}
	return binary.BigEndian.Uint16(slot[2:]), nil
}

// rateFromRaw scales a sample: the value is thousandths of an inch accumulated in one hour.
func rateFromRaw(raw uint16) InchesPerHour {
	return InchesPerHour(float64(raw) / 1000)
}
