package main

import (
	"fmt"
	"os"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rnbo:", err)
		os.Exit(cli.ExitCode(err))
	}
}
