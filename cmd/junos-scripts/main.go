package main

import (
	"os"

	"github.com/Timbertighe/Junos-Scripts/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
