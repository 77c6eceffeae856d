package api

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/cancellation"
	"github.com/starlines/starlines/pkg/database"
	"github.com/starlines/starlines/pkg/order"
	"github.com/starlines/starlines/pkg/query"
	"github.com/starlines/starlines/pkg/querycache"
	"github.com/starlines/starlines/pkg/redis_client"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "mock",
						Usage: "answer search queries from the built-in mock dataset",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					var cache querycache.Cache
					if err := redis_client.Connect(); err != nil {
						log.Warn().Err(err).Msg("Redis unavailable, using in-memory query cache")
						memory := querycache.NewMemoryCache()
						memory.StartSweeper(query.TTLCountries)
						cache = memory
					} else {
						cache = querycache.NewRedisCache(redis_client.Client)
					}

					transport := bussystem.NewClient(bussystem.LoadConfig())

					queryClient := query.NewClient(query.Options{
						Transport: transport,
						Cache:     cache,
						Mock:      c.Bool("mock"),
					})

					store := order.NewStore()

					return SetupServer(c.String("listen"), Services{
						Query:     queryClient,
						Orders:    order.NewWorkflow(transport, store),
						Estimator: cancellation.NewEstimator(transport),
						Executor:  cancellation.NewExecutor(transport),
					})
				},
			},
		},
	}
}
