package main

import (
	"os"

	"github.com/vuminh/ghinho/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
