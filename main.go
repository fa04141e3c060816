package main

import (
	"os"

	"github.com/upskillhq/skillpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
