package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/pkg/relay"
)

const modulePath = "github.com/mesh-intelligence/relay"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the relay version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "relay v%s\nmodule: %s\n", relay.Version, modulePath)
			return nil
		},
	}
}
