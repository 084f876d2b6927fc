package main

import (
	"os"

	"github.com/spiffcs/screener/cmd"
	"github.com/spiffcs/screener/internal/output"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		_ = output.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}
