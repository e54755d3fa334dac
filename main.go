// main holds the entry logic for the lifespan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/lifespan/cmd"
	"github.com/huangsam/lifespan/internal/iocache"
	"github.com/huangsam/lifespan/internal/log"
)

// main is the entry point for the lifespan analyzer.
func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code so deferred cleanup runs.
func run() int {
	defer log.Sync()
	defer iocache.CloseCaching()

	cmd.SetCacheManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		return 1
	}
	return 0
}
