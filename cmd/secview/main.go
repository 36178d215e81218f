// Package main is the entry point for the secview CLI binary.
package main

import (
	"os"

	cli "secview/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
