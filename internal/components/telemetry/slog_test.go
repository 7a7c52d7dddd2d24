package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	api := NewScopedAPI("fetch", SlogAPI{
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})

	api.ReportBroken("fetcher.fetch", "https://www.topcv.vn", errors.New("boom"))
	require.Contains(t, buf.String(), `msg="broken component" scope=fetch id=fetcher.fetch params.0=https://www.topcv.vn err=boom`)

	buf.Reset()
	api.ReportCount("fetcher.stats-requests", 3)
	require.Contains(t, buf.String(), `msg=count scope=fetch id=fetcher.stats-requests n=3`)

	buf.Reset()
	api.ReportDebug("listing", 12)
	require.Contains(t, buf.String(), `msg="fetch: listing" params.0=12`)
}
