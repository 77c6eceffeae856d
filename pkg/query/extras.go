package query

import (
	"context"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/normalise"
)

// GetFreeSeats fetches availability for every segment of a route. Segments
// come back in the order the interval ids were given, which is the order
// seat assignment walks them in.
func (c *Client) GetFreeSeats(ctx context.Context, intervalIDs []string) Response[[]ctbs.SegmentSeats] {
	if len(intervalIDs) == 0 {
		return failure[[]ctbs.SegmentSeats](bussystem.NewValidationError("at least one interval_id is required"))
	}

	params := map[string]interface{}{"interval_id": intervalIDs, "lang": c.lang}

	return run(ctx, c, "free_seats", params, TTLSeatData, func(ctx context.Context) ([]ctbs.SegmentSeats, error) {
		segments := make([]ctbs.SegmentSeats, 0, len(intervalIDs))

		for _, intervalID := range intervalIDs {
			var seats []ctbs.FreeSeatItem

			if c.mock {
				seats = mockSeats(intervalID)
			} else {
				raw, err := c.transport.Post(ctx, bussystem.EndpointGetFreeSeats, map[string]interface{}{
					"interval_id": intervalID,
				})
				if err != nil {
					return nil, err
				}

				seats, err = emptyOnUnrecognised(normalise.SeatList(unwrap(raw, "free_seat")))
				if err != nil {
					return nil, err
				}
			}

			segments = append(segments, ctbs.SegmentSeats{
				SegmentID: intervalID,
				Seats:     seats,
			})
		}

		return segments, nil
	})
}

// GetDiscounts fetches the discounts offered on a route.
func (c *Client) GetDiscounts(ctx context.Context, intervalID string) Response[[]ctbs.Discount] {
	if intervalID == "" {
		return failure[[]ctbs.Discount](bussystem.NewValidationError("interval_id is required"))
	}

	params := map[string]string{"interval_id": intervalID, "lang": c.lang}

	return run(ctx, c, "discounts", params, TTLSeatData, func(ctx context.Context) ([]ctbs.Discount, error) {
		if c.mock {
			return mockDiscounts(), nil
		}

		raw, err := c.transport.Post(ctx, bussystem.EndpointGetDiscount, map[string]interface{}{
			"interval_id": intervalID,
		})
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.DiscountList(unwrap(raw, "discounts")))
	})
}

// GetBaggage fetches the purchasable baggage options on a route.
func (c *Client) GetBaggage(ctx context.Context, intervalID string) Response[[]ctbs.BaggageItem] {
	if intervalID == "" {
		return failure[[]ctbs.BaggageItem](bussystem.NewValidationError("interval_id is required"))
	}

	params := map[string]string{"interval_id": intervalID, "lang": c.lang}

	return run(ctx, c, "baggage", params, TTLSeatData, func(ctx context.Context) ([]ctbs.BaggageItem, error) {
		if c.mock {
			return mockBaggage(), nil
		}

		raw, err := c.transport.Post(ctx, bussystem.EndpointGetBaggage, map[string]interface{}{
			"interval_id": intervalID,
		})
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.BaggageList(unwrap(raw, "baggage")))
	})
}

// unwrap digs one named level into a response body when present; several
// endpoints nest their list under a keyed field, several do not.
func unwrap(raw interface{}, key string) interface{} {
	if body, ok := raw.(map[string]interface{}); ok {
		if nested, present := body[key]; present {
			return nested
		}

		if root, hasRoot := body["root"].(map[string]interface{}); hasRoot {
			if nested, present := root[key]; present {
				return nested
			}
		}
	}

	return raw
}
