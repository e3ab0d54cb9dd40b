// Package diprtest builds DPR files for tests. New returns a valid file; tests change the
// fields they want to break before encoding it.
package diprtest

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dsnet/compress/bzip2"
)

// Radial is one radial of the symbology block.
type Radial struct {
	Azimuth   float32
	Elevation float32
	Width     float32
	Samples   []uint16 // raw sample values, thousandths of an inch per hour
}

// File describes the contents of a DPR file field by field, as stored on the wire.
type File struct {
	StationCode string

	Divider        int16
	Latitude       int32 // thousandths of a degree
	Longitude      int32 // thousandths of a degree
	Mode           int16
	PrecipDetected int8

	// UncompressedSize overrides the declared symbology size. Zero writes the real size.
	UncompressedSize int32

	Name        string
	Description string
	RadarName   string

	CaptureTime     uint32 // unix seconds
	ScanNumber      int32
	Components      int32
	ComponentType   int32
	BinSize         float32
	RangeToFirstBin float32
	Radials         []Radial

	// Compress replaces bzip2 for the symbology payload.
	Compress func([]byte) ([]byte, error)
}

// New returns a valid precipitation mode file for KGYX (Gray, Maine) with no radials.
func New() *File {
	return &File{
		StationCode:     "KGYX",
		Divider:         -1,
		Latitude:        43_891,
		Longitude:       -70_257,
		Mode:            2,
		PrecipDetected:  1,
		Name:            "DPR",
		Description:     "Digital Instantaneous Precipitation Rate",
		RadarName:       "KGYX",
		CaptureTime:     1_589_385_600, // 2020-05-13T16:00:00Z
		ScanNumber:      42,
		Components:      1,
		ComponentType:   1,
		BinSize:         250,
		RangeToFirstBin: 0,
	}
}

// UniformRadials returns n radials evenly spread around the circle, each with the given samples.
// Radials are at most one degree wide, so fewer than 360 leave gaps between them.
func UniformRadials(n int, samples ...uint16) []Radial {
	radials := make([]Radial, n)
	step := float32(360) / float32(n)
	width := min(step, 1)
	for i := range radials {
		radials[i] = Radial{
			Azimuth:   step*float32(i) + step/2,
			Elevation: 0.5,
			Width:     width,
			Samples:   append([]uint16(nil), samples...),
		}
	}
	return radials
}

// Bytes encodes the complete file.
func (f *File) Bytes() ([]byte, error) {
	symbology := f.Symbology()

	compress := f.Compress
	if compress == nil {
		compress = Bzip2
	}
	compressed, err := compress(symbology)
	if err != nil {
		return nil, err
	}

	size := f.UncompressedSize
	if size == 0 {
		size = int32(len(symbology))
	}

	b := &bytes.Buffer{}
	b.WriteString(f.TextHeader())
	f.writeMessageHeader(b, 30+18+102+len(compressed))
	f.writeProductDescription(b, size)
	b.Write(compressed)
	return b.Bytes(), nil
}

// MustBytes is Bytes for tests that build known-good files.
func (f *File) MustBytes() []byte {
	b, err := f.Bytes()
	if err != nil {
		panic(err)
	}
	return b
}

// TextHeader is the 30 byte WMO header, eg "SDUS81 KGYX 131600\r\r\nDPRGYX\r\r\n".
func (f *File) TextHeader() string {
	code := fmt.Sprintf("%-4.4s", f.StationCode)
	return "SDUS81 " + code + " 131600\r\r\nDPR" + code[1:] + "\r\r\n"
}

func (f *File) writeMessageHeader(b *bytes.Buffer, length int) {
	put(b, int16(176))    // message code
	put(b, int16(18396))  // days since 1970
	put(b, int32(57600))  // seconds since midnight
	put(b, int32(length)) // total message length
	put(b, int16(0))      // source id
	put(b, int16(0))      // destination id
	put(b, int16(3))      // number of blocks
}

func (f *File) writeProductDescription(b *bytes.Buffer, size int32) {
	put(b, f.Divider)
	put(b, f.Latitude)
	put(b, f.Longitude)
	b.Write(make([]byte, 4))
	put(b, f.Mode)
	b.Write(make([]byte, 24))
	put(b, f.PrecipDetected)
	b.Write(make([]byte, 43))
	put(b, size)
	b.Write(make([]byte, 14))
}

// Symbology encodes the uncompressed product symbology block.
func (f *File) Symbology() []byte {
	b := &bytes.Buffer{}
	b.Write(make([]byte, 16+8))
	putString(b, f.Name)
	putString(b, f.Description)
	b.Write(make([]byte, 12))
	putString(b, f.RadarName)
	b.Write(make([]byte, 12))
	put(b, f.CaptureTime)
	b.Write(make([]byte, 8))
	put(b, f.ScanNumber)
	b.Write(make([]byte, 24))
	put(b, f.Components)
	if f.Components > 0 {
		b.Write(make([]byte, 8*int(f.Components)))
	}
	put(b, f.ComponentType)
	putString(b, "")
	put(b, f.BinSize)
	put(b, f.RangeToFirstBin)
	b.Write(make([]byte, 8))
	put(b, int32(len(f.Radials)))
	for _, r := range f.Radials {
		put(b, r.Azimuth)
		put(b, r.Elevation)
		put(b, r.Width)
		put(b, int32(len(r.Samples)))
		putString(b, "")
		b.Write(make([]byte, 4))
		for _, s := range r.Samples {
			b.Write([]byte{0, 0})
			put(b, s)
		}
	}
	return b.Bytes()
}

// Bzip2 compresses data the way DPR files are compressed.
func Bzip2(data []byte) ([]byte, error) {
	out := &bytes.Buffer{}
	w, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func put(b *bytes.Buffer, v any) {
	// only fixed size values are passed, writes to a bytes.Buffer cannot fail
	_ = binary.Write(b, binary.BigEndian, v)
}

func putString(b *bytes.Buffer, s string) {
	put(b, uint32(len(s)))
	b.WriteString(s)
	b.Write(make([]byte, (4-len(s)%4)%4))
}
