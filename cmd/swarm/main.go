package main

import (
	"os"

	"github.com/pgazmuri/agentswarm/cmd/swarm/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
