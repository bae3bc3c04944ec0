// Command figprep preprocesses and validates the FIG-Loneliness dataset.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/figprep/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
