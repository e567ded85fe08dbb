package main

import (
	"os"

	"torreport/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
