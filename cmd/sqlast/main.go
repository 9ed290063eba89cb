package main

import (
	"os"

	"github.com/oarkflow/sqlast/cmd/sqlast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
