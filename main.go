package main

import (
	"os"

	"github.com/kastenhq/fiostat/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
