package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/internal/logging"
	"github.com/mesh-intelligence/relay/internal/paths"
	"github.com/mesh-intelligence/relay/internal/sqlite"
	"github.com/mesh-intelligence/relay/pkg/types"
)

// resolveDataDir applies flag > env > config > platform default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
}

// withDirectory attaches the configured directory, runs fn, and detaches.
func (a *app) withDirectory(cmd *cobra.Command, fn func(ctx context.Context, dir types.Directory) error) error {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return sysError(err, "resolve data directory")
	}
	ctx := cmd.Context()

	dir := sqlite.NewBackend(sqlite.WithLogger(logging.Ctx(ctx)))
	if err := dir.Attach(types.Config{Backend: a.settings.Backend, DataDir: dataDir}); err != nil {
		return sysError(err, "attach directory")
	}
	defer dir.Detach()

	return fn(ctx, dir)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(err, "encode output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
