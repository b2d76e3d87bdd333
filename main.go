package main

import (
	"os"

	"github.com/djade-fmt/djade/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
