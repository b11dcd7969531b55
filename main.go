package main

import (
	"os"

	"github.com/divebot/divequest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
