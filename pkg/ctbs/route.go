package ctbs

import "encoding/json"

type TransportType string

const (
	TransportTypeBus   TransportType = "bus"
	TransportTypeTrain TransportType = "train"
)

// RouteSummary is one bookable journey option. IntervalID is the opaque key
// every downstream call (seats, discounts, baggage, order creation) is made
// with; it is never parsed, only forwarded.
type RouteSummary struct {
	IntervalID string `groups:"basic" json:"interval_id"`

	RouteName     string        `groups:"basic" json:"route_name,omitempty"`
	Carrier       string        `groups:"basic" json:"carrier,omitempty"`
	TransportType TransportType `groups:"basic" json:"trans,omitempty"`
	Comfort       string        `groups:"detailed" json:"comfort,omitempty"`

	PointIDFrom   FlexString `groups:"basic" json:"point_id_from,omitempty"`
	PointFrom     string     `groups:"basic" json:"point_from,omitempty"`
	StationIDFrom FlexString `groups:"detailed" json:"station_id_from,omitempty"`
	StationFrom   string     `groups:"detailed" json:"station_from,omitempty"`

	PointIDTo   FlexString `groups:"basic" json:"point_id_to,omitempty"`
	PointTo     string     `groups:"basic" json:"point_to,omitempty"`
	StationIDTo FlexString `groups:"detailed" json:"station_id_to,omitempty"`
	StationTo   string     `groups:"detailed" json:"station_to,omitempty"`

	DateFrom string `groups:"basic" json:"date_from"`
	TimeFrom string `groups:"basic" json:"time_from,omitempty"`
	DateTo   string `groups:"basic" json:"date_to"`
	TimeTo   string `groups:"basic" json:"time_to,omitempty"`

	Price    FlexFloat `groups:"basic" json:"price"`
	Currency string    `groups:"basic" json:"currency,omitempty"`

	FreeSeats FlexInt `groups:"basic" json:"free_seats,omitempty"`

	// Follow-up call gates. When set the corresponding fetch is mandatory
	// before an order can be built against this interval.
	RequestGetFreeSeats FlexBool `groups:"detailed" json:"request_get_free_seats"`
	RequestGetDiscount  FlexBool `groups:"detailed" json:"request_get_discount"`
	RequestGetBaggage   FlexBool `groups:"detailed" json:"request_get_baggage"`
	HasPlan             FlexBool `groups:"detailed" json:"has_plan"`

	// Passenger document requirements, forwarded into order building.
	NeedDoc           FlexBool `groups:"detailed" json:"need_doc"`
	NeedGender        FlexBool `groups:"detailed" json:"need_gender"`
	NeedCitizenship   FlexBool `groups:"detailed" json:"need_citizenship"`
	NeedDocExpireDate FlexBool `groups:"detailed" json:"need_doc_expire_date"`

	Trips       TripList          `groups:"detailed" json:"trips,omitempty"`
	ChangeRoute ChangeSegmentList `groups:"detailed" json:"change_route,omitempty"`
}

// Trip is a sub-interval of a multi-carrier transfer route.
type Trip struct {
	IntervalID  string     `groups:"detailed" json:"interval_id"`
	RouteName   string     `groups:"detailed" json:"route_name,omitempty"`
	Carrier     string     `groups:"detailed" json:"carrier,omitempty"`
	PointIDFrom FlexString `groups:"detailed" json:"point_id_from,omitempty"`
	PointIDTo   FlexString `groups:"detailed" json:"point_id_to,omitempty"`
	DateFrom    string     `groups:"detailed" json:"date_from,omitempty"`
	TimeFrom    string     `groups:"detailed" json:"time_from,omitempty"`
	DateTo      string     `groups:"detailed" json:"date_to,omitempty"`
	TimeTo      string     `groups:"detailed" json:"time_to,omitempty"`

	HasPlan FlexBool `groups:"detailed" json:"has_plan"`
}

type ChangeSegment struct {
	PointIDFrom    FlexString `groups:"detailed" json:"point_id_from,omitempty"`
	PointFrom      string     `groups:"detailed" json:"point_from,omitempty"`
	PointIDTo      FlexString `groups:"detailed" json:"point_id_to,omitempty"`
	PointTo        string     `groups:"detailed" json:"point_to,omitempty"`
	DateFrom       string     `groups:"detailed" json:"date_from,omitempty"`
	TimeFrom       string     `groups:"detailed" json:"time_from,omitempty"`
	DateTo         string     `groups:"detailed" json:"date_to,omitempty"`
	TimeTo         string     `groups:"detailed" json:"time_to,omitempty"`
	TransferTime   string     `groups:"detailed" json:"transfer_time,omitempty"`
	ChangeStations FlexBool   `groups:"detailed" json:"change_stations"`
	ChangeTypeStay string     `groups:"detailed" json:"change_typ,omitempty"`
	FreeSeats      FlexInt    `groups:"detailed" json:"free_seats,omitempty"`
}

// TripList tolerates the single-object-instead-of-array quirk of converted
// XML responses.
type TripList []Trip

func (l *TripList) UnmarshalJSON(data []byte) error {
	var asList []Trip
	if err := json.Unmarshal(data, &asList); err == nil {
		*l = asList
		return nil
	}

	var single Trip
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	*l = TripList{single}
	return nil
}

type ChangeSegmentList []ChangeSegment

func (l *ChangeSegmentList) UnmarshalJSON(data []byte) error {
	var asList []ChangeSegment
	if err := json.Unmarshal(data, &asList); err == nil {
		*l = asList
		return nil
	}

	var single ChangeSegment
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	*l = ChangeSegmentList{single}
	return nil
}

// IntervalIDs returns every interval identifier this route is booked with.
// Transfer routes carry one per sub-trip and all of them must be forwarded
// together; simple routes carry just the top-level one.
func (r *RouteSummary) IntervalIDs() []string {
	if len(r.Trips) > 0 {
		ids := make([]string, 0, len(r.Trips))
		for _, trip := range r.Trips {
			if trip.IntervalID != "" {
				ids = append(ids, trip.IntervalID)
			}
		}

		if len(ids) > 0 {
			return ids
		}
	}

	return []string{r.IntervalID}
}

func (r *RouteSummary) HasTransfers() bool {
	return len(r.Trips) > 1
}

// RouteSearchParams are the caller-supplied search constraints. They are
// kept verbatim on an OutboundSelection so the return search can invert
// them without re-deriving anything.
type RouteSearchParams struct {
	IDFrom        string   `json:"id_from"`
	IDTo          string   `json:"id_to"`
	StationIDFrom string   `json:"station_id_from,omitempty"`
	StationIDTo   string   `json:"station_id_to,omitempty"`
	Date          string   `json:"date"`
	Currency      string   `json:"currency,omitempty"`
	Change        string   `json:"change,omitempty"`
	TransportType string   `json:"trans,omitempty"`
	IntervalID    []string `json:"interval_id,omitempty"`
}
