package dipr

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// MessageHeader provides a high level description of the product. (ICD Figure 3-3)
// It is only logged, the decoder never acts on it.
type MessageHeader struct {
	Code       int16
	Date       int16
	Time       int32
	Length     int32
	SourceID   int16
	DestID     int16
	BlockCount int16
}

// Decoder decodes DPR files with a configurable decompressor.
type Decoder struct {
	decompressor Decompressor
}

// NewDecoder returns a Decoder using d for the symbology payload. A nil d means Bzip2.
func NewDecoder(d Decompressor) *Decoder {
	if d == nil {
		d = Bzip2
	}
	return &Decoder{decompressor: d}
}

var defaultDecoder = NewDecoder(Bzip2)

// Decode converts the raw bytes of a DPR file into a PrecipRate.
func Decode(data []byte) (*PrecipRate, error) {
	return defaultDecoder.Decode(data)
}

// DecodeReader reads everything from r and decodes it.
func DecodeReader(r io.Reader) (*PrecipRate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// DecodeFile decodes the DPR file at filename.
func DecodeFile(filename string) (*PrecipRate, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode converts the raw bytes of a DPR file into a PrecipRate. Either the whole file is valid
// and a PrecipRate is returned, or nothing is.
//
// The layout is:
//   - 30 byte WMO text header holding the station code
//   - 18 byte message header
//   - product description block
//   - bzip2 compressed product symbology block with the radials
func (d *Decoder) Decode(data []byte) (*PrecipRate, error) {
	c := newCursor(data, "text header")

	stationCode, err := decodeTextHeader(c)
	if err != nil {
		return nil, err
	}

	c.block = "message header"
	header, err := c.take(messageHeaderLength)
	if err != nil {
		return nil, err
	}
	logMessageHeader(header)

	pd, err := decodeProductDescription(c)
	if err != nil {
		return nil, err
	}

	compressed := c.rest()
	logrus.Debugf("Compressed symbology (%s bytes)", color.CyanString("%d", len(compressed)))
	payload, err := d.decompressor.Decompress(compressed, int(pd.UncompressedSize))
	if err != nil {
		return nil, &DecompressionError{Err: err}
	}

	ps, err := decodeProductSymbology(newCursor(payload, symbologyBlock))
	if err != nil {
		return nil, err
	}

	return &PrecipRate{
		StationCode:     stationCode,
		CaptureTime:     ps.CaptureTime,
		ScanNumber:      ps.ScanNumber,
		Location:        pd.Location,
		OperationalMode: pd.OperationalMode,
		PrecipDetected:  pd.PrecipDetected,
		MaxPrecipRate:   maxRate(ps.Radials),
		BinSize:         ps.BinSize,
		RangeToFirstBin: ps.RangeToFirstBin,
		Radials:         ps.Radials,
	}, nil
}

// decodeTextHeader skips the WMO header around the four letter station code.
func decodeTextHeader(c *cursor) (string, error) {
	if err := c.skip(7); err != nil {
		return "", err
	}
	code, err := c.take(4)
	if err != nil {
		return "", err
	}
	if err := c.skip(textHeaderLength - 7 - 4); err != nil {
		return "", err
	}
	if !utf8.Valid(code) {
		return "", fmt.Errorf("station code: %w", ErrInvalidText)
	}
	return strings.Trim(string(code), " \x00"), nil
}

func logMessageHeader(b []byte) {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	h := MessageHeader{
		Code:       int16(binary.BigEndian.Uint16(b[0:2])),
		Date:       int16(binary.BigEndian.Uint16(b[2:4])),
		Time:       int32(binary.BigEndian.Uint32(b[4:8])),
		Length:     int32(binary.BigEndian.Uint32(b[8:12])),
		SourceID:   int16(binary.BigEndian.Uint16(b[12:14])),
		DestID:     int16(binary.BigEndian.Uint16(b[14:16])),
		BlockCount: int16(binary.BigEndian.Uint16(b[16:18])),
	}
	logrus.Tracef("  Message Header code=%d length=%d source=%d blocks=%d", h.Code, h.Length, h.SourceID, h.BlockCount)
}

func maxRate(radials []Radial) InchesPerHour {
	var highest InchesPerHour
	for _, r := range radials {
		for _, rate := range r.Rates {
			highest = max(highest, rate)
		}
	}
	return highest
}
