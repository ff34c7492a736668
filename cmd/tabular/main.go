// Package main provides the tabular CLI.
package main

import (
	"github.com/leapstack-labs/tabular/internal/cli"
)

func main() {
	cli.Execute()
}
