// Command rewrite-proxy is a demonstration reverse proxy that applies a
// header-rewrite filter to every request/response pair it forwards. It
// exists to exercise a built Program's concurrent-read contract — one
// Program, shared read-only across every in-flight stream — against a
// real net/http server instead of only the in-process test doubles in
// internal/rewrite/host.
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
