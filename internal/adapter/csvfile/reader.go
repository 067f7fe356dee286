// Package csvfile loads station exports from disk as text lines.
package csvfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineBytes = 1 << 20

// Reader reads a CSV export into lines. It implements pipeline.Source.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the file at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Path returns the file the reader loads.
func (r *Reader) Path() string {
	return r.path
}

// ReadLines returns every line of the file, header included. A leading UTF-8
// byte order mark is dropped and CRLF endings are normalized.
func (r *Reader) ReadLines(ctx context.Context) ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	lines, err := readLines(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	r.logger.Debug("input loaded", "path", r.path, "lines", len(lines))
	return lines, nil
}

func readLines(ctx context.Context, src io.Reader) ([]string, error) {
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
