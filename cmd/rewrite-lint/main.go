// Command rewrite-lint loads a header-rewrite DSL configuration and reports
// whether it builds cleanly, optionally evaluating it against a sample
// request.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
