// Package main is the single-binary entrypoint for wgboard.
package main

import "wgboard/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
