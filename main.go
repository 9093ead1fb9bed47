package main

import (
	"os"

	"github.com/abhisek/dsamentor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
