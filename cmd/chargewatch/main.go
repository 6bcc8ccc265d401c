// Package main is the entry point for the chargewatch CLI.
package main

import (
	"os"

	"github.com/chargewatch/chargewatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
