package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/pkg/types"
)

func newTenantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}
	cmd.AddCommand(newTenantAddCmd(a), newTenantListCmd(a))
	return cmd
}

func newTenantAddCmd(a *app) *cobra.Command {
	var tn types.Tenant
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant and print its node ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDirectory(cmd, func(ctx context.Context, dir types.Directory) error {
				tenants, err := dir.Tenants()
				if err != nil {
					return sysError(err, "open tenants")
				}
				if _, err := tenants.Set(ctx, &tn); err != nil {
					if errors.Is(err, types.ErrInvalidName) {
						return userError("tenant name must not be empty")
					}
					return sysError(err, "save tenant")
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), tn)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tn.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&tn.Name, "name", "", "tenant name (required)")
	cmd.Flags().StringVar(&tn.Description, "description", "", "tenant description")
	return cmd
}

func newTenantListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDirectory(cmd, func(ctx context.Context, dir types.Directory) error {
				tenants, err := dir.Tenants()
				if err != nil {
					return sysError(err, "open tenants")
				}
				all, err := tenants.List(ctx)
				if err != nil {
					return sysError(err, "list tenants")
				}
				if a.jsonMode {
					if all == nil {
						all = []*types.Tenant{}
					}
					return printJSON(cmd.OutOrStdout(), all)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
				for _, tn := range all {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", tn.ID, tn.Name, tn.Description)
				}
				return tw.Flush()
			})
		},
	}
}
