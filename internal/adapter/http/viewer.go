package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/couchcryptid/weather-chart/internal/domain"
)

// Opener launches something that displays url.
type Opener func(url string) error

// Viewer shows a chart by serving it over HTTP until its context ends.
// It implements pipeline.Viewer.
type Viewer struct {
	server          *Server
	open            Opener
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// NewViewer creates a Viewer. Pass a nil opener to only log the URL.
func NewViewer(server *Server, open Opener, shutdownTimeout time.Duration, logger *slog.Logger) *Viewer {
	return &Viewer{
		server:          server,
		open:            open,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// View renders fig, serves it, and blocks until ctx is cancelled.
func (v *Viewer) View(ctx context.Context, title string, fig domain.Figure) error {
	var buf bytes.Buffer
	if err := fig.WritePNG(&buf); err != nil {
		return err
	}
	v.server.SetChart(title, buf.Bytes())

	ln, err := v.server.Listen()
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- v.server.Serve(ln)
	}()

	url := browseURL(ln.Addr())
	v.logger.Info("chart available, press Ctrl+C to close", "url", url)
	if v.open != nil {
		if err := v.open(url); err != nil {
			v.logger.Warn("could not open browser", "error", err, "url", url)
		}
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve chart: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), v.shutdownTimeout)
	defer cancel()
	if err := v.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown viewer: %w", err)
	}
	return nil
}

// browseURL turns a listener address into a URL a local browser can reach.
func browseURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
