package compress

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Extension marks files that hold a zstd frame.
const Extension = ".zst"

type Codec interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

type ZstdCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCodec) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCodec) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("decode zstd frame: %w", err)
	}
	return out, nil
}

func NewZstdCodec() (*ZstdCodec, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &ZstdCodec{encoder: encoder, decoder: decoder}, nil
}

// IsCompressedPath reports whether path names a zstd file.
func IsCompressedPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(path)), Extension)
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// LooksCompressed sniffs the zstd frame magic number.
func LooksCompressed(val []byte) bool {
	return bytes.HasPrefix(val, zstdMagic)
}
