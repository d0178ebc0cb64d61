package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/relay/internal/nodes"
	"github.com/mesh-intelligence/relay/pkg/relay"
	"github.com/mesh-intelligence/relay/pkg/types"
)

// nodeOutput is the JSON form of one node lookup.
type nodeOutput struct {
	ID    string `json:"id"`
	Tag   string `json:"tag,omitempty"`
	Node  any    `json:"node,omitempty"`
	Error string `json:"error,omitempty"`
}

func newNodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "node <id>",
		Short: "Fetch the node an opaque ID names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := nodes.NewResolver()
			if err != nil {
				return sysError(err, "build resolver")
			}
			return a.withDirectory(cmd, func(ctx context.Context, dir types.Directory) error {
				n, err := r.FetchNode(ctx, nodes.NewContext(dir), args[0])
				if err != nil {
					return nodeError(args[0], err)
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), nodeOutput{ID: n.ID(), Tag: n.Tag(), Node: n.Entity()})
				}
				describeNode(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

func newNodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes <id>...",
		Short: "Fetch several nodes at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := nodes.NewResolver()
			if err != nil {
				return sysError(err, "build resolver")
			}
			return a.withDirectory(cmd, func(ctx context.Context, dir types.Directory) error {
				results := r.FetchNodes(ctx, nodes.NewContext(dir), args)

				var firstErr error
				out := make([]nodeOutput, 0, len(results))
				for _, res := range results {
					o := nodeOutput{ID: res.ID}
					if res.Err != nil {
						e := nodeError(res.ID, res.Err)
						if firstErr == nil || exitCode(e) > exitCode(firstErr) {
							firstErr = e
						}
						o.Error = e.Error()
					} else {
						o.Tag = res.Node.Tag()
						o.Node = res.Node.Entity()
					}
					out = append(out, o)
				}

				w := cmd.OutOrStdout()
				if a.jsonMode {
					if err := printJSON(w, out); err != nil {
						return err
					}
				} else {
					for i, res := range results {
						if i > 0 {
							fmt.Fprintln(w)
						}
						if res.Err != nil {
							fmt.Fprintf(w, "%s\n  error: %s\n", res.ID, out[i].Error)
							continue
						}
						describeNode(w, res.Node)
					}
				}
				return firstErr
			})
		},
	}
}

// nodeError maps malformed, unrecognized, and missing nodes to one user
// error. Anything else is a system failure.
func nodeError(id string, err error) error {
	if relay.IsNoSuchNode(err) {
		return userError("no such node: %s", id)
	}
	return sysError(err, "fetch node "+id)
}

// describeNode prints a node as indented key/value lines.
func describeNode(w io.Writer, n relay.Node) {
	if u, ok := relay.NodeAs[types.User](n); ok {
		fmt.Fprintf(w, "%s\n  type:    User\n  name:    %s\n  role:    %s\n  created: %s\n",
			n.ID(), u.Name, u.Role, u.CreatedAt.Format(time.RFC3339))
		return
	}
	if tn, ok := relay.NodeAs[types.Tenant](n); ok {
		fmt.Fprintf(w, "%s\n  type:        Tenant\n  name:        %s\n  description: %s\n  created:     %s\n",
			n.ID(), tn.Name, tn.Description, tn.CreatedAt.Format(time.RFC3339))
		return
	}
	fmt.Fprintf(w, "%s\n  tag: %s\n", n.ID(), n.Tag())
}
