// main is the entry point for the clew CLI.
package main

import (
	"os"

	"github.com/janus-clew/clew/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
