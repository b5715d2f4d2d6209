package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter serves the default registry on /metrics.
type Exporter struct {
	server *http.Server
	ln     net.Listener
}

func NewExporter(addr string) *Exporter {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Exporter{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Listen binds the listen address and returns the bound address.
func (e *Exporter) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", e.server.Addr)
	if err != nil {
		return nil, err
	}
	e.ln = ln
	return ln.Addr(), nil
}

// Serve serves until ctx is done, then shuts the server down. It calls
// Listen first if needed.
func (e *Exporter) Serve(ctx context.Context) error {
	if e.ln == nil {
		if _, err := e.Listen(); err != nil {
			return err
		}
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = e.server.Shutdown(shutdownCtx)
	}()
	if err := e.server.Serve(e.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
