package main

import (
	"os"

	_ "github.com/echocat/slf4g/native"

	"github.com/ayusman/airdeck/internal/cli"
	"github.com/ayusman/airdeck/internal/output"
)

func main() {
	if err := cli.NewRootCmd(&cli.Dependencies{}).Execute(); err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
