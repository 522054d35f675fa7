// Command swift-validate type-checks Swift code and optionally runs it.
package main

import (
	"context"
	"os"

	"github.com/deixis/swiftkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), cli.NewValidateCommand("swift-validate")))
}
