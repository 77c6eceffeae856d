package query

import (
	"context"
	"time"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/normalise"
)

const searchDateLayout = "2006-01-02"

// ValidateReturnDate reports whether a return journey on returnDate is
// allowed for an outbound arriving on arrivalDate: the return may not leave
// before the outbound has arrived. Unparseable dates fail closed.
func ValidateReturnDate(arrivalDate string, returnDate string) bool {
	arrival, err := time.Parse(searchDateLayout, arrivalDate)
	if err != nil {
		return false
	}

	returning, err := time.Parse(searchDateLayout, returnDate)
	if err != nil {
		return false
	}

	return !returning.Before(arrival)
}

// BuildReturnParams derives the return-search request from an outbound
// selection. The sequence matters and must stay exactly this:
//
//  1. origin and destination swap,
//  2. station constraints swap with field-name inversion (outbound's
//     boarding station becomes the return's alighting station and vice
//     versa, including when only one side was constrained),
//  3. every outbound interval id is forwarded unchanged, and
//  4. change is forced to "auto" regardless of the outbound setting.
//
// Getting any of these wrong returns a self-consistent but wrong result set,
// which the provider will not flag.
func BuildReturnParams(outbound ctbs.OutboundSelection, returnDate string) ctbs.RouteSearchParams {
	intervalIDs := make([]string, len(outbound.IntervalIDs))
	copy(intervalIDs, outbound.IntervalIDs)

	return ctbs.RouteSearchParams{
		IDFrom:        outbound.Params.IDTo,
		IDTo:          outbound.Params.IDFrom,
		StationIDFrom: outbound.Params.StationIDTo,
		StationIDTo:   outbound.Params.StationIDFrom,
		Date:          returnDate,
		Currency:      outbound.Params.Currency,
		TransportType: outbound.Params.TransportType,
		Change:        "auto",
		IntervalID:    intervalIDs,
	}
}

// GetRoutesReturn searches return journeys for a chosen outbound. The
// return date is validated against the outbound arrival before any network
// traffic happens.
func (c *Client) GetRoutesReturn(ctx context.Context, outbound ctbs.OutboundSelection, returnDate string) Response[[]ctbs.RouteSummary] {
	if outbound.Route.IntervalID == "" {
		return failure[[]ctbs.RouteSummary](bussystem.NewValidationError("return search requires an outbound selection"))
	}

	if !ValidateReturnDate(outbound.ArrivalDate, returnDate) {
		return failure[[]ctbs.RouteSummary](bussystem.NewValidationError("return date is before the outbound arrival date"))
	}

	params := BuildReturnParams(outbound, returnDate)

	return run(ctx, c, "routes_return", params, TTLRoutes, func(ctx context.Context) ([]ctbs.RouteSummary, error) {
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
