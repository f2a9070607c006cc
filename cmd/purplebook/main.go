package main

import (
	"os"

	"github.com/purplebook-dev/purplebook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
