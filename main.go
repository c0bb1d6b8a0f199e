package main

import (
	"os"

	"github.com/cryslith/hgssh4/cmd"
	"github.com/cryslith/hgssh4/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
