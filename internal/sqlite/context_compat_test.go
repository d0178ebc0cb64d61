package sqlite

import (
	"context"
	"testing"
)

// testContext returns a context canceled when t's cleanup runs,
// standing in for testing.T.Context on toolchains older than Go 1.24.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
