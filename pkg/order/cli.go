package order

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/database"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "Inspect & monitor reservations",
		Subcommands: []*cli.Command{
			{
				Name:  "status",
				Usage: "fetch the current status of an order",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "order", Usage: "order id", Required: true},
					&cli.StringFlag{Name: "security", Usage: "order security token", Required: true},
				},
				Action: func(c *cli.Context) error {
					workflow := NewWorkflow(newTransport(), nil)

					details, err := workflow.Fetch(c.Context, c.String("order"), c.String("security"))
					if err != nil {
						return err
					}

					log.Info().
						Str("order_id", details.OrderID).
						Str("status", string(details.Status)).
						Float64("price_total", details.PriceTotal).
						Str("currency", details.Currency).
						Msg("Order status")

					return nil
				},
			},
			{
				Name:  "monitor",
				Usage: "poll an order until it reaches a terminal status",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "order", Usage: "order id", Required: true},
					&cli.StringFlag{Name: "security", Usage: "order security token", Required: true},
					&cli.StringFlag{Name: "interval", Value: "PT30S", Usage: "poll interval (ISO8601 duration)"},
					&cli.BoolFlag{Name: "persist", Usage: "record status changes in the database"},
				},
				Action: func(c *cli.Context) error {
					var store *Store
					if c.Bool("persist") {
						if err := database.Connect(); err != nil {
							return err
						}
						store = NewStore()
					}

					interval, err := ParseInterval(c.String("interval"))
					if err != nil {
						return err
					}

					workflow := NewWorkflow(newTransport(), store)
					monitor := NewMonitor(workflow, interval)

					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					go func() {
						<-signals
						cancel()
					}()

					orderID := c.String("order")

					for update := range monitor.Watch(ctx, orderID, c.String("security")) {
						log.Info().
							Str("order_id", update.OrderID).
							Str("status", string(update.Status)).
							Time("observed", update.Observed).
							Msg("Order status changed")

						if store != nil {
							if err := store.UpdateStatus(ctx, orderID, update.Status); err != nil {
								log.Warn().Err(err).Msg("Failed to persist status change")
							}
						}
					}

					return nil
				},
			},
		},
	}
}

func newTransport() bussystem.Transport {
	return bussystem.NewClient(bussystem.LoadConfig())
}
