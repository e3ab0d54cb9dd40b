package dipr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// cursor walks forward over a byte slice. The slice itself is never modified, only the offset
// moves. Every read checks the remaining length first.
type cursor struct {
	buf   []byte
	off   int
	block string // used in error messages
}

func newCursor(buf []byte, block string) *cursor {
	return &cursor{buf: buf, block: block}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// rest returns everything not yet consumed.
func (c *cursor) rest() []byte {
	return c.buf[c.off:]
}

// take pops n bytes off the front.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, &TruncatedError{Block: c.block, Offset: c.off, Want: n, Have: c.remaining()}
	}
	b := c.buf[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// skip consumes n reserved bytes.
func (c *cursor) skip(n int) error {
	_, err := c.take(n)
	return err
}

func (c *cursor) int8() (int8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (c *cursor) int16() (int16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) int32() (int32, error) {
	v, err := c.uint32()
	return int32(v), err
}

func (c *cursor) float32() (float32, error) {
	v, err := c.uint32()
	return math.Float32frombits(v), err
}

type ordered interface {
	~int8 | ~int16 | ~int32 | ~float32
}

// checkRange fails unless lo <= v <= hi. NaN always fails.
func checkRange[T ordered](block, field string, v, lo, hi T) error {
	if v >= lo && v <= hi {
		return nil
	}
	return &RangeError{Block: block, Field: field, Value: v, Expected: fmt.Sprintf("[%v, %v]", lo, hi)}
}

// checkFinite fails when v is NaN or infinite.
func checkFinite(block, field string, v float32) error {
	f := float64(v)
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		return nil
	}
	return &RangeError{Block: block, Field: field, Value: v, Expected: "a finite number"}
}

// checkValue fails unless v == want.
func checkValue[T comparable](block, field string, v, want T) error {
	if v == want {
		return nil
	}
	return &RangeError{Block: block, Field: field, Value: v, Expected: fmt.Sprint(want)}
}
