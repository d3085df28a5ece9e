package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pyskel/pyskel/internal/cli"
	"github.com/pyskel/pyskel/internal/descriptor"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(context.Background(), version, commit, date); err != nil {
		var ure *descriptor.UnsupportedRuntimeError
		if errors.As(err, &ure) {
			fmt.Fprint(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
