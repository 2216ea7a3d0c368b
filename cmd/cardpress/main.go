package main

import (
	"os"

	"github.com/kmelas/go-cardpress/cmd/cardpress/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
