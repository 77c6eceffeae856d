package query

import (
	"context"
	"encoding/json"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/normalise"
)

// GetRoutes searches bookable journeys for the given constraints.
func (c *Client) GetRoutes(ctx context.Context, params ctbs.RouteSearchParams) Response[[]ctbs.RouteSummary] {
	if params.IDFrom == "" || params.IDTo == "" || params.Date == "" {
		return failure[[]ctbs.RouteSummary](bussystem.NewValidationError("id_from, id_to and date are required"))
	}

	return run(ctx, c, "routes", params, TTLRoutes, func(ctx context.Context) ([]ctbs.RouteSummary, error) {
		if c.mock {
			return mockRoutes(params), nil
		}

		raw, err := c.transport.Post(ctx, bussystem.EndpointGetRoutes, paramsToBody(params))
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.RouteList(raw))
	})
}

// paramsToBody flattens the typed search params into the request body the
// provider expects, through the params' own JSON tags.
func paramsToBody(params ctbs.RouteSearchParams) map[string]interface{} {
	encoded, _ := json.Marshal(params)

	body := map[string]interface{}{}
	json.Unmarshal(encoded, &body)

	return body
}
