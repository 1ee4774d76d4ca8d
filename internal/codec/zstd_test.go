package codec

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestDecompressRoundTrip(t *testing.T) {
	d := NewDecompressor(nil)
	defer d.Close()

	want := `{"trump":{"suit":"hearts","number":"2"}}`
	frame := compress(t, []byte(want))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := d.Decompress(frame)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestDecompressRejectsInvalidUTF8(t *testing.T) {
	d := NewDecompressor(nil)
	defer d.Close()

	_, err := d.Decompress(compress(t, []byte{0xff, 0xfe, 0xfd}))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestDecompressRejectsGarbage(t *testing.T) {
	d := NewDecompressor(nil)
	defer d.Close()

	_, err := d.Decompress([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestDecompressAfterClose(t *testing.T) {
	d := NewDecompressor(nil)
	d.Close()

	_, err := d.Decompress(compress(t, []byte("late")))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLoadDictionaryDecodesCompressedFile(t *testing.T) {
	dir := t.TempDir()
	plain := []byte("raw dictionary bytes")

	rawPath := filepath.Join(dir, "dict.raw")
	require.NoError(t, os.WriteFile(rawPath, plain, 0o600))
	got, err := LoadDictionary(rawPath)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	zstPath := filepath.Join(dir, "dict.zst")
	require.NoError(t, os.WriteFile(zstPath, compress(t, plain), 0o600))
	got, err = LoadDictionary(zstPath)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	_, err = LoadDictionary(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDecompressorWithInvalidDictionary(t *testing.T) {
	d := NewDecompressor([]byte("not a zstd dictionary"))
	defer d.Close()

	_, err := d.Decompress(compress(t, []byte("hello")))
	assert.Error(t, err)
}
