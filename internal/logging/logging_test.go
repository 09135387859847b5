package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var quiet, verbose bytes.Buffer
	New(&quiet, false, false).Debug("rebuilt", slog.Int("loads", 3))
	New(&verbose, true, false).Debug("rebuilt", slog.Int("loads", 3))

	require.Empty(t, quiet.String())
	require.Contains(t, verbose.String(), "rebuilt")
	require.Contains(t, verbose.String(), "loads=3")
}

func TestNoColor(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false, false).Info("solved")
	require.NotContains(t, buf.String(), "\x1b[")

	buf.Reset()
	New(&buf, false, true).Warn("singular")
	require.Contains(t, buf.String(), "\x1b[")
}

func TestSetupInstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup(&buf, true, false)
	require.Same(t, logger, slog.Default())
	slog.Debug("through default")
	require.Contains(t, buf.String(), "through default")
}
