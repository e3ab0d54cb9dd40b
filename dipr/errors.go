package dipr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOperationalMode = errors.New("invalid operational mode")
	ErrInvalidCaptureTime     = errors.New("invalid capture time")
	ErrDecompressionFailed    = errors.New("decompression failed")
	ErrInvalidText            = errors.New("invalid UTF-8 text")
	ErrInvalidFixedWidthSlice = errors.New("invalid fixed width slice")
	ErrValueOutOfRange        = errors.New("value out of specified range")
	ErrUnsupported            = errors.New("unsupported product variant")
	ErrTruncatedInput         = errors.New("truncated input")
)

// TruncatedError reports a read that needed more bytes than remained.
type TruncatedError struct {
	Block  string
	Offset int
	Want   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: truncated input at offset %d: need %d bytes, have %d", e.Block, e.Offset, e.Want, e.Have)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncatedInput }

// RangeError reports a field outside its inclusive range (or not equal to its required value).
type RangeError struct {
	Block    string
	Field    string
	Value    any
	Expected string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s in %s: got %v, expected %s", e.Field, e.Block, e.Value, e.Expected)
}

func (e *RangeError) Unwrap() error { return ErrValueOutOfRange }

// UnsupportedError reports a well formed but unhandled product variant.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string { return e.Reason }

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// CaptureTimeError carries the raw timestamp that could not be turned into a time.
type CaptureTimeError struct {
	Raw uint32
}

func (e *CaptureTimeError) Error() string {
	return fmt.Sprintf("failed to parse capture time: 0x%02x", e.Raw)
}

func (e *CaptureTimeError) Unwrap() error { return ErrInvalidCaptureTime }

// DecompressionError wraps the decompressor's failure.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("failed to decompress product symbology: %v", e.Err)
}

func (e *DecompressionError) Is(target error) bool { return target == ErrDecompressionFailed }

func (e *DecompressionError) Unwrap() error { return e.Err }
