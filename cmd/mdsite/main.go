package main

import (
	"os"

	"github.com/hemmendinger/mdsite/internal/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
