// Package main is the entry point for the chargewatchd daemon.
package main

import (
	"log"
	"os"

	"github.com/chargewatch/chargewatch/internal/daemon/cmd"
)

func main() {
	log.SetPrefix("[chargewatchd] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
