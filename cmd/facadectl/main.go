package main

import (
	"os"

	"github.com/facadeworks/facade-workbench/cmd/facadectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
