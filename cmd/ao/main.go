// Command ao is the front-end CLI for the ao smart-contract scripting
// language: tokenize or parse a .ao file and inspect the result.
package main

import (
	"fmt"
	"os"

	"github.com/aolang/ao/cmd/ao/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
