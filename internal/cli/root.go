// Package cli implements the relay command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/internal/logging"
	"github.com/mesh-intelligence/relay/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the settings loaded for one run.
type app struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool

	settings settings
}

// NewRootCmd creates the top-level "relay" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "relay",
		Short: "Opaque global identifiers for directory nodes",
		Long: "relay issues opaque, type-tagged identifiers for users and tenants\n" +
			"and resolves any identifier back to the node it names.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newUserCmd(a),
		newTenantCmd(a),
		newNodeCmd(a),
		newNodesCmd(a),
		newIDCmd(a),
	)
	return root
}

// setup loads settings and installs the logger in the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(err, "resolve config directory")
	}
	a.configDir = dir

	s, err := loadSettings(dir)
	if err != nil {
		return sysError(err, "load config")
	}
	if a.logLevel != "" {
		s.Log.Level = a.logLevel
	}
	a.settings = s

	logger := logging.New(s.Log, cmd.ErrOrStderr())
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitCode(err)
}

// exitError attaches an exit code to an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError reports bad input. It exits with code 1.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysError reports an environment or storage failure. It exits with code 2.
func sysError(err error, msg string) error {
	return &exitError{code: exitSysError, err: fmt.Errorf("%s: %w", msg, err)}
}

// exitCode maps a command error to an exit code. Errors without an
// explicit code come from cobra's flag and argument checks.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
