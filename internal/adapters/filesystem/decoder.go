package filesystem

import (
	"context"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"auditlens/internal/domain"
	"auditlens/internal/ports"
)

// Decoder implements ports.FormatDecoder for plain and gzip files
type Decoder struct{}

// Ensure Decoder implements FormatDecoder
var _ ports.FormatDecoder = (*Decoder)(nil)

// NewDecoder creates a new format decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// ReadText reads a whole file as text
func (d *Decoder) ReadText(ctx context.Context, path string) (string, error) {
	f, err := d.open(ctx, path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return "", &domain.IOReadError{Path: path, Err: err}
	}
	return string(data), nil
}

// Decompress reads a gzip file and returns the decompressed text.
// Concatenated gzip members are read as one stream.
func (d *Decoder) Decompress(ctx context.Context, path string) (string, error) {
	f, err := d.open(ctx, path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return "", &domain.IOReadError{Path: path, Err: err}
	}
	defer zr.Close()

	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: zr})
	if err != nil {
		return "", &domain.IOReadError{Path: path, Err: err}
	}
	return string(data), nil
}

func (d *Decoder) open(ctx context.Context, path string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(expandHome(path))
	if err != nil {
		return nil, &domain.IOReadError{Path: path, Err: err}
	}
	return f, nil
}

// ctxReader stops a long read once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
