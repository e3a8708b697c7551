// attrdoctor finds and clears file attributes that keep a mod manager from
// reading or writing game files.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := newRootCmd(buildInfo{version: version, commit: commit, date: date})
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errUnhealthy) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
