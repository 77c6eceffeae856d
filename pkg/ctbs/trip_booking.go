package ctbs

// OutboundSelection captures a chosen outbound route together with the
// original search parameters and the derived arrival date. It exists only
// to seed a return search and is replaced whenever the outbound changes.
type OutboundSelection struct {
	Route  RouteSummary      `groups:"basic" json:"route"`
	Params RouteSearchParams `groups:"basic" json:"params"`

	ArrivalDate string   `groups:"basic" json:"arrival_date"`
	IntervalIDs []string `groups:"basic" json:"interval_ids"`
}

func NewOutboundSelection(route RouteSummary, params RouteSearchParams) OutboundSelection {
	return OutboundSelection{
		Route:       route,
		Params:      params,
		ArrivalDate: route.DateTo,
		IntervalIDs: route.IntervalIDs(),
	}
}

// TripBooking is the single mutable session object behind the return-journey
// flow. Return must be cleared whenever Outbound changes or RoundTrip is
// disabled; the journey orchestrator enforces that.
type TripBooking struct {
	Outbound  *OutboundSelection `groups:"basic" json:"outbound,omitempty"`
	Return    *RouteSummary      `groups:"basic" json:"return,omitempty"`
	RoundTrip bool               `groups:"basic" json:"round_trip"`
}
