package main

import (
	"os"

	"github.com/abhisek/prepengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
