// Package main provides the entry point for the cvgraph CLI.
package main

import (
	"fmt"
	"os"

	"github.com/khajiev13/cv-agent-fiilterer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
