// Package main provides the labels CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/labels/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
