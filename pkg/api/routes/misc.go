package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/query"
)

// respond maps a query envelope onto an HTTP response, reducing the payload
// with sheriff so only the basic & detailed groups leave the server.
func respond[T any](c *fiber.Ctx, response query.Response[T]) error {
	if !response.Success {
		c.SendStatus(statusForError(response.Error))
		return c.JSON(fiber.Map{
			"error": response.Error,
		})
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, response.Data)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response data",
		})
	}

	return c.JSON(fiber.Map{
		"data":   reduced,
		"cached": response.Cached,
	})
}

// reduce marshals any groups-tagged value for direct embedding in a response.
func reduce(c *fiber.Ctx, value interface{}) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, value)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response data",
		})
	}

	return c.JSON(reduced)
}

func statusForError(apiError *bussystem.Error) int {
	if apiError == nil {
		return fiber.StatusInternalServerError
	}

	switch apiError.Code {
	case bussystem.ErrorCodeValidation:
		return fiber.StatusBadRequest
	case bussystem.ErrorCodeAuth:
		return fiber.StatusBadGateway
	case bussystem.ErrorCodeTimeout:
		return fiber.StatusGatewayTimeout
	case bussystem.ErrorCodeProvider:
		return fiber.StatusBadGateway
	case bussystem.ErrorCodeCancelled, bussystem.ErrorCodeSuperseded:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError is the non-envelope variant used by the order & cancellation
// routes, whose services return plain errors.
func handleError(c *fiber.Ctx, err error) error {
	apiError := bussystem.AsError(err)
	c.SendStatus(statusForError(apiError))
	return c.JSON(fiber.Map{
		"error": apiError,
	})
}
