package compress_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/gymbro/internal/compress"
)

func TestZstdCodec_CompressDecompress(t *testing.T) {
	t.Parallel()

	codec, err := compress.NewZstdCodec()
	require.NoError(t, err)

	original := bytes.Repeat([]byte(`{"exercise_name":"Squat","sets":3,"reps":5,"weight":100}`), 50)
	packed, err := codec.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(original))
	assert.True(t, compress.LooksCompressed(packed))
	assert.False(t, compress.LooksCompressed(original))

	unpacked, err := codec.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, original, unpacked)
}

func TestZstdCodec_DecompressGarbage(t *testing.T) {
	t.Parallel()

	codec, err := compress.NewZstdCodec()
	require.NoError(t, err)

	_, err = codec.Decompress([]byte("not zstd"))
	assert.Error(t, err)
}

func TestIsCompressedPath(t *testing.T) {
	t.Parallel()

	assert.True(t, compress.IsCompressedPath("backup.json.zst"))
	assert.True(t, compress.IsCompressedPath(" EXPORT.ZST "))
	assert.False(t, compress.IsCompressedPath("backup.json"))
}
