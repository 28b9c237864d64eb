package main

import (
	"os"

	"github.com/pomelo-edu/pomelo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
