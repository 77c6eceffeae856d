package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/starlines/starlines/pkg/cancellation"
)

func CancellationsRouter(router fiber.Router, estimator *cancellation.Estimator, executor *cancellation.Executor) {
	router.Get("/estimate/:ticket", estimateTicket(estimator))
	router.Post("/estimate", estimateOrder(estimator))
	router.Post("/tickets/:ticket", cancelTicket(executor))
	router.Post("/orders/:order", cancelOrder(executor))
}

func estimateTicket(estimator *cancellation.Estimator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		estimate, err := estimator.TicketEstimate(c.Context(), cancellation.TicketRef{
			TicketID: c.Params("ticket"),
			Security: c.Query("security"),
		})
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, estimate)
	}
}

type estimateBatchRequest struct {
	Tickets []cancellation.TicketRef `json:"tickets"`
}

func estimateOrder(estimator *cancellation.Estimator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request estimateBatchRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Could not parse estimate request",
			})
		}

		estimates := estimator.OrderEstimate(c.Context(), request.Tickets)
		totals := cancellation.CalculateTotalRefund(estimates)

		return reduce(c, fiber.Map{
			"estimates": estimates,
			"totals":    totals,
		})
	}
}

func cancelTicket(executor *cancellation.Executor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := executor.CancelTicket(c.Context(), c.Params("ticket"), c.Query("security"))
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, result)
	}
}

func cancelOrder(executor *cancellation.Executor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := executor.CancelOrder(c.Context(), c.Params("order"), c.Query("security"))
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, result)
	}
}
