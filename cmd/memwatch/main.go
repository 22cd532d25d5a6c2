package main

import (
	"os"

	"github.com/mexus/memory-watcher/cmd/memwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
