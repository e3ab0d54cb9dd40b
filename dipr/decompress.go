package dipr

import (
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// maxSizeHint bounds the buffer preallocation taken from the product description.
const maxSizeHint = 16 << 20

// Decompressor turns the compressed symbology payload into its raw bytes.
type Decompressor interface {
	Decompress(compressed []byte, sizeHint int) ([]byte, error)
}

// DecompressorFunc adapts a function to the Decompressor interface.
type DecompressorFunc func(compressed []byte, sizeHint int) ([]byte, error)

func (f DecompressorFunc) Decompress(compressed []byte, sizeHint int) ([]byte, error) {
	return f(compressed, sizeHint)
}

// Bzip2 is the decompressor used by DPR files.
var Bzip2 Decompressor = DecompressorFunc(decompressBzip2)

func decompressBzip2(compressed []byte, sizeHint int) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(compressed), nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := bytes.Buffer{}
	if sizeHint > 0 && sizeHint <= maxSizeHint {
		out.Grow(sizeHint)
	}
	if _, err := io.Copy(&out, r); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
