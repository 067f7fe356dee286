// Package filesink writes rendered charts to disk as cropped, high-resolution
// PNG files.
package filesink

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/weather-chart/internal/domain"
)

// Sink saves figures into a directory and confirms each save on out.
// It implements pipeline.Saver.
type Sink struct {
	dir    string
	dpi    float64
	out    io.Writer
	logger *slog.Logger
}

// New creates a Sink writing into dir (the working directory when empty).
// dpi is recorded in the PNG header and sizes the crop padding.
func New(dir string, dpi float64, out io.Writer, logger *slog.Logger) *Sink {
	return &Sink{dir: dir, dpi: dpi, out: out, logger: logger}
}

// Save renders fig, crops it to its content plus a tenth of an inch, and
// writes it to filename inside the sink directory.
func (s *Sink) Save(fig domain.Figure, filename string) error {
	var raw bytes.Buffer
	if err := fig.WritePNG(&raw); err != nil {
		return err
	}

	cropped, err := tightCrop(raw.Bytes(), int(s.dpi*padInches))
	if err != nil {
		return fmt.Errorf("crop %s: %w", filename, err)
	}

	final, err := withDPI(cropped, s.dpi)
	if err != nil {
		return fmt.Errorf("annotate %s: %w", filename, err)
	}

	path := filepath.Join(s.dir, filename)
	if err := writeFileAtomic(path, final); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Debug("chart saved", "path", path, "bytes", len(final))
	fmt.Fprintf(s.out, "\n✅ '%s' has been saved successfully in the current directory.\n", filename)
	return nil
}

// writeFileAtomic writes through a temp file in the same directory so a
// failed save never leaves a truncated image behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".chart-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
