// Package codec holds byte-stream helpers used at the module boundary.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
)

var (
	ErrInvalidUTF8 = errors.New("decompressed data is not valid utf-8")
	ErrClosed      = errors.New("decompressor is closed")
)

var frameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Decompressor decodes zstd frames, optionally against a dictionary.
//
// The decoder is built on first use and then reused by every call until
// Close. Calls may come from any goroutine.
type Decompressor struct {
	dict []byte

	once sync.Once
	mu   sync.Mutex
	dec  *zstd.Decoder
	err  error
}

// NewDecompressor returns a Decompressor for dict, which may be empty.
func NewDecompressor(dict []byte) *Decompressor {
	return &Decompressor{dict: dict}
}

// LoadDictionary reads a zstd dictionary from path. A dictionary stored as a
// zstd frame is decompressed first.
func LoadDictionary(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zstd dictionary: %w", err)
	}
	if !bytes.HasPrefix(raw, frameMagic) {
		return raw, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to construct decoder: %w", err)
	}
	defer dec.Close()
	dict, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decode zstd dictionary: %w", err)
	}
	return dict, nil
}

func (d *Decompressor) init() {
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if len(d.dict) > 0 {
		opts = append(opts, zstd.WithDecoderDicts(d.dict))
	}
	dec, err := zstd.NewReader(nil, opts...)
	if err != nil {
		d.err = fmt.Errorf("failed to construct decoder: %w", err)
		return
	}
	d.dec = dec
}

// Decompress decodes src and returns it as a UTF-8 string.
func (d *Decompressor) Decompress(src []byte) (string, error) {
	d.once.Do(d.init)
	if d.err != nil {
		return "", d.err
	}

	d.mu.Lock()
	if d.dec == nil {
		d.mu.Unlock()
		return "", ErrClosed
	}
	out, err := d.dec.DecodeAll(src, nil)
	d.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to decode data: %w", err)
	}
	if !utf8.Valid(out) {
		return "", ErrInvalidUTF8
	}
	return string(out), nil
}

// Close releases the decoder. Later calls fail with ErrClosed.
func (d *Decompressor) Close() {
	d.once.Do(func() {})
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dec != nil {
		d.dec.Close()
		d.dec = nil
	}
}
