package main

import (
	"os"

	"fpadmin/cmd/fpadmin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
