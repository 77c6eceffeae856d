package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/query"
)

func JourneysRouter(router fiber.Router, client *query.Client) {
	router.Get("/search", searchJourneys(client))
	router.Post("/search/return", searchReturnJourneys(client))
	router.Get("/intervals/:interval/seats", getIntervalSeats(client))
	router.Get("/intervals/:interval/discounts", getIntervalDiscounts(client))
	router.Get("/intervals/:interval/baggage", getIntervalBaggage(client))
}

func searchJourneys(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := ctbs.RouteSearchParams{
			IDFrom:        c.Query("from"),
			IDTo:          c.Query("to"),
			StationIDFrom: c.Query("station_from"),
			StationIDTo:   c.Query("station_to"),
			Date:          c.Query("date"),
			Currency:      c.Query("currency"),
			Change:        c.Query("change", "auto"),
			TransportType: c.Query("trans", "bus"),
		}

		return respond(c, client.GetRoutes(c.Context(), params))
	}
}

// returnSearchRequest carries the already-selected outbound leg, which the
// server needs to invert the direction and validate the date ordering.
type returnSearchRequest struct {
	Outbound   ctbs.OutboundSelection `json:"outbound"`
	ReturnDate string                 `json:"return_date"`
}

func searchReturnJourneys(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request returnSearchRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Could not parse return search request",
			})
		}

		return respond(c, client.GetRoutesReturn(c.Context(), request.Outbound, request.ReturnDate))
	}
}

func getIntervalSeats(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, client.GetFreeSeats(c.Context(), []string{c.Params("interval")}))
	}
}

func getIntervalDiscounts(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, client.GetDiscounts(c.Context(), c.Params("interval")))
	}
}

func getIntervalBaggage(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, client.GetBaggage(c.Context(), c.Params("interval")))
	}
}
