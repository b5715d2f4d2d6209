package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestExporterServesMetrics(t *testing.T) {
	Observer{}.CoderBuilt("exporter_test")

	e := NewExporter("127.0.0.1:0")
	addr, err := e.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.Serve(ctx) })

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `rlnc_factory_coders_built_total{stack="exporter_test"} 1`)

	cancel()
	require.NoError(t, g.Wait())
}
