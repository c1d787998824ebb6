package main

import (
	"os"

	"github.com/mkarlsen/photodiaryctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
