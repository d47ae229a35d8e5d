package main

import (
	"os"

	"github.com/songzhibin97/tokenlens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
