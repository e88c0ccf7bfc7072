package main

import (
	"fmt"
	"os"

	"idb-monitor/cmd/idb-monitor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
