package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/logsieve/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
