package main

import (
	"os"

	"github.com/haguru/sakura/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
