package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/order"
)

func OrdersRouter(router fiber.Router, workflow *order.Workflow) {
	router.Post("/", submitOrder(workflow))
	router.Post("/:order/pay", payOrder(workflow))
	router.Post("/:order/sms", requestSMSCode(workflow))
	router.Post("/:order/sms/confirm", confirmSMSCode(workflow))
	router.Get("/:order", getOrder(workflow))
}

// orderRequest is the full booking payload assembled by the front end.
type orderRequest struct {
	Trips      []order.TripMeta `json:"trips"`
	Passengers []ctbs.Passenger `json:"passengers"`
	Common     order.CommonData `json:"common"`
}

func submitOrder(workflow *order.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request orderRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Could not parse order request",
			})
		}

		reservation, err := workflow.Submit(c.Context(), request.Trips, request.Passengers, request.Common)
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, reservation)
	}
}

func payOrder(workflow *order.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := workflow.Pay(c.Context(), c.Params("order"), c.Query("security"))
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, result)
	}
}

type smsRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func requestSMSCode(workflow *order.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request smsRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Could not parse sms request",
			})
		}

		result, err := workflow.RequestSMSCode(c.Context(), c.Params("order"), c.Query("security"), request.Phone)
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, result)
	}
}

func confirmSMSCode(workflow *order.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request smsRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Could not parse sms request",
			})
		}

		result, err := workflow.ConfirmSMSCode(c.Context(), c.Params("order"), c.Query("security"), request.Phone, request.Code)
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, result)
	}
}

func getOrder(workflow *order.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		details, err := workflow.Fetch(c.Context(), c.Params("order"), c.Query("security"))
		if err != nil {
			return handleError(c, err)
		}

		return reduce(c, details)
	}
}
