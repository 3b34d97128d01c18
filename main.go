package main

import (
	"os"

	"whistler/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
