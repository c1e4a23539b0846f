package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/specialistvlad/protocatalog/internal/ctxlog"
)

// Context returns a context carrying a logger that discards its output,
// cancelled when the test ends.
func Context(t *testing.T) context.Context {
	t.Helper()
	return ContextWithLogger(t, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ContextWithLogger returns a test context carrying logger.
func ContextWithLogger(t *testing.T, logger *slog.Logger) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctxlog.WithLogger(ctx, logger)
}
