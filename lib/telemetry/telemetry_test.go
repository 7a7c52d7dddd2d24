package telemetry

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShutdownWithoutSetup(t *testing.T) {
	require.NoError(t, Shutdown(context.Background()))
}

func TestSetupWithoutEndpoints(t *testing.T) {
	err := Setup(context.Background(), "topcv-crawler-test", Config{})
	require.NoError(t, err)
	require.NoError(t, Shutdown(context.Background()))
}

func TestSetupFromEnvMissingFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, SetupFromEnv(context.Background(), "topcv-crawler-test"))
}

func TestInstrumentPerfStatsStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	InstrumentPerfStats(ctx, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	cancel()
}
