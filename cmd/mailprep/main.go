package main

import (
	"os"

	"github.com/dotarpa/mailprep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
