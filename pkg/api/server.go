package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/starlines/starlines/pkg/api/routes"
	"github.com/starlines/starlines/pkg/cancellation"
	"github.com/starlines/starlines/pkg/order"
	"github.com/starlines/starlines/pkg/query"
)

// Services are the backend components the HTTP layer exposes.
type Services struct {
	Query     *query.Client
	Orders    *order.Workflow
	Estimator *cancellation.Estimator
	Executor  *cancellation.Executor
}

func SetupServer(listen string, services Services) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PointsRouter(group.Group("/points"), services.Query)
	routes.JourneysRouter(group.Group("/journeys"), services.Query)
	routes.OrdersRouter(group.Group("/orders"), services.Orders)
	routes.CancellationsRouter(group.Group("/cancellations"), services.Estimator, services.Executor)

	return webApp.Listen(listen)
}
