package query

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Run provider searches from the command line",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "answer from the built-in mock dataset",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:      "autocomplete",
				Usage:     "look up cities matching a search term",
				ArgsUsage: "<term>",
				Action: func(c *cli.Context) error {
					client := newCLIClient(c)

					response := client.Autocomplete(c.Context, c.Args().First())
					if !response.Success {
						return response.Error
					}

					fmt.Printf("%# v\n", pretty.Formatter(response.Data))
					return nil
				},
			},
			{
				Name:  "routes",
				Usage: "search routes between two points",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "origin point id", Required: true},
					&cli.StringFlag{Name: "to", Usage: "destination point id", Required: true},
					&cli.StringFlag{Name: "date", Usage: "departure date (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "currency", Value: "EUR"},
				},
				Action: func(c *cli.Context) error {
					client := newCLIClient(c)

					response := client.GetRoutes(c.Context, ctbs.RouteSearchParams{
						IDFrom:   c.String("from"),
						IDTo:     c.String("to"),
						Date:     c.String("date"),
						Currency: c.String("currency"),
						Change:   "auto",
					})
					if !response.Success {
						return response.Error
					}

					fmt.Printf("%# v\n", pretty.Formatter(response.Data))
					return nil
				},
			},
			{
				Name:      "seats",
				Usage:     "list free seats for an interval",
				ArgsUsage: "<interval-id>",
				Action: func(c *cli.Context) error {
					client := newCLIClient(c)

					response := client.GetFreeSeats(c.Context, []string{c.Args().First()})
					if !response.Success {
						return response.Error
					}

					fmt.Printf("%# v\n", pretty.Formatter(response.Data))
					return nil
				},
			},
		},
	}
}

func newCLIClient(c *cli.Context) *Client {
	return NewClient(Options{
		Transport: bussystem.NewClient(bussystem.LoadConfig()),
		Mock:      c.Bool("mock"),
	})
}
