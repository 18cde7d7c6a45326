package main

import (
	"os"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
