package main

import (
	"os"

	"github.com/pocketfin-dev/pocketfin/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
