package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize relay storage",
		Long: "Write a default config.yaml if none exists, then create the data\n" +
			"directory and its JSONL files.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return sysError(err, "resolve data directory")
	}

	s := a.settings
	s.DataDir = dataDir
	wrote, err := writeConfigIfMissing(a.configDir, s)
	if err != nil {
		return sysError(err, "write config")
	}

	err = a.withDirectory(cmd, func(context.Context, types.Directory) error { return nil })
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.jsonMode {
		return printJSON(out, map[string]any{
			"config_dir":     a.configDir,
			"data_dir":       dataDir,
			"config_written": wrote,
		})
	}
	fmt.Fprintf(out, "relay initialized\nconfig: %s\ndata:   %s\n", a.configDir, dataDir)
	return nil
}
