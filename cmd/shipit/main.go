// shipit entrypoint.
//
// The binary is meant to run as a single CI build stage or from a local
// shell. Keep this file simple: env overrides, logger, hand off to cli.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shipit/internal/cli"
)

func main() {
	// Local overrides for dev runs; harmless in CI.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("SHIPIT_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	cli.Execute()
}
