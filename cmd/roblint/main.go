package main

import (
	"os"

	"github.com/midbel/roblint/cmd/roblint/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
