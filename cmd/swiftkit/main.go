// Command swiftkit groups the Swift validation and scaffolding tools and
// serves them over MCP.
package main

import (
	"context"
	"os"

	"github.com/deixis/swiftkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), cli.NewRootCommand()))
}
