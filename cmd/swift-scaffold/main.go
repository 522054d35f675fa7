// Command swift-scaffold creates a SwiftUI app package.
package main

import (
	"context"
	"os"

	"github.com/deixis/swiftkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), cli.NewScaffoldCommand("swift-scaffold")))
}
