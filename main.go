package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/insurance-callcenter-agent/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
