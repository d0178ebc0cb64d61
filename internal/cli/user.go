package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/pkg/types"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd(a), newUserListCmd(a))
	return cmd
}

func newUserAddCmd(a *app) *cobra.Command {
	var u types.User
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user and print its node ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDirectory(cmd, func(ctx context.Context, dir types.Directory) error {
				users, err := dir.Users()
				if err != nil {
					return sysError(err, "open users")
				}
				if _, err := users.Set(ctx, &u); err != nil {
					if errors.Is(err, types.ErrInvalidName) {
						return userError("user name must not be empty")
					}
					return sysError(err, "save user")
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), u)
				}
				fmt.Fprintln(cmd.OutOrStdout(), u.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&u.Name, "name", "", "user name (required)")
	cmd.Flags().StringVar(&u.Role, "role", "member", "user role")
	return cmd
}

func newUserListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDirectory(cmd, func(ctx context.Context, dir types.Directory) error {
				users, err := dir.Users()
				if err != nil {
					return sysError(err, "open users")
				}
				all, err := users.List(ctx)
				if err != nil {
					return sysError(err, "list users")
				}
				if a.jsonMode {
					if all == nil {
						all = []*types.User{}
					}
					return printJSON(cmd.OutOrStdout(), all)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tROLE")
				for _, u := range all {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Name, u.Role)
				}
				return tw.Flush()
			})
		},
	}
}
