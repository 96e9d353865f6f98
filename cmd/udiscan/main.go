package main

import (
	"os"

	"github.com/epz-tools/udiscan/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
