package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/starlines/starlines/pkg/query"
)

func PointsRouter(router fiber.Router, client *query.Client) {
	router.Get("/autocomplete", pointsAutocomplete(client))
	router.Get("/countries", listCountries(client))
	router.Get("/countries/grouped", listCountryGroups(client))
	router.Get("/countries/:country/cities", listCitiesByCountry(client))
}

func pointsAutocomplete(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		queryText := c.Query("q")
		if queryText == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "A search term must be applied to the request",
			})
		}

		return respond(c, client.Autocomplete(c.Context(), queryText))
	}
}

func listCountries(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, client.GetCountries(c.Context()))
	}
}

func listCountryGroups(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, client.GetCountryGroups(c.Context()))
	}
}

func listCitiesByCountry(client *query.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		countryID := c.Params("country")
		if countryID == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "A country must be given",
			})
		}

		return respond(c, client.GetCitiesByCountry(c.Context(), countryID))
	}
}
