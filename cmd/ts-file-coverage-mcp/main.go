package main

import (
	"os"

	"github.com/tscoverage/tscoverage/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.ExecuteMCP(); err != nil {
		os.Exit(1)
	}
}
