package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/starlines/starlines/pkg/api"
	"github.com/starlines/starlines/pkg/order"
	"github.com/starlines/starlines/pkg/query"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("STARLINES_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("STARLINES_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "starlines",
		Description: "Single binary of truth for Starlines - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			query.RegisterCLI(),
			order.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
