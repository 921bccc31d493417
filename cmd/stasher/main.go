package main

import (
	"os"

	"github.com/mvwi/stasher/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
