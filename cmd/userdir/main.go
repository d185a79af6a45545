// Command userdir is a terminal client for the reqres.in user directory.
package main

import (
	"os"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/cli"
)

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
