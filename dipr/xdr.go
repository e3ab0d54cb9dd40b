package dipr

import (
	"fmt"
	"unicode/utf8"
)

// string parses an XDR string from the head of the input.
//
// XDR strings are not null-terminated. They start with an unsigned four-byte length, followed
// by the contents, padded with zero bytes to a multiple of four. (RFC 1832, section 3.11)
func (c *cursor) string() (string, error) {
	length, err := c.uint32()
	if err != nil {
		return "", err
	}
	b, err := c.take(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w at offset %d", c.block, ErrInvalidText, c.off-len(b))
	}
	if err := c.skip(xdrPadding(length)); err != nil {
		return "", err
	}
	return string(b), nil
}

// xdrPadding is the number of zero bytes following a string of the given length.
func xdrPadding(length uint32) int {
	return int((4 - length%4) % 4)
}
