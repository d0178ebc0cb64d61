// Command relay issues and resolves opaque node identifiers for a
// directory of users and tenants.
package main

import (
	"os"

	"github.com/mesh-intelligence/relay/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
