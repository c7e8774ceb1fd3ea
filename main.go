package main

import (
	"os"

	"github.com/crestline-systems/crestline-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
