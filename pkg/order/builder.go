package order

import (
	"fmt"
	"strings"

	"github.com/starlines/starlines/pkg/ctbs"
)

// TripMeta is everything the builder needs about one trip of the order: the
// chosen route, the per-passenger seat assignments over its segments, and
// the optional extras keyed by passenger index.
type TripMeta struct {
	Route       ctbs.RouteSummary
	SegmentIDs  []string
	Assignments []ctbs.PassengerSeatAssignment

	// passenger index -> discount id
	Discounts map[int]string
	// passenger index -> baggage ids
	Baggage map[int][]string
}

// CommonData is the order-level contact and pricing data.
type CommonData struct {
	Phone    string
	Email    string
	Currency string
	Lang     string
	Promo    string
}

// BuildPayload assembles the provider's new_order request body from the
// accumulated booking state.
//
// Seats are passenger-ordered: per trip one entry per passenger, the
// passenger's seats across that trip's segments comma-joined. Document
// fields appear only when some trip's route demands them; the provider
// rejects empty strings for fields it did not ask for, so absence means
// absence.
func BuildPayload(trips []TripMeta, passengers []ctbs.Passenger, common CommonData) (map[string]interface{}, error) {
	if len(trips) == 0 {
		return nil, fmt.Errorf("order needs at least one trip")
	}
	if len(passengers) == 0 {
		return nil, fmt.Errorf("order needs at least one passenger")
	}

	dates := make([]string, 0, len(trips))
	intervalIDs := make([]string, 0, len(trips))
	seats := make([][]string, 0, len(trips))

	for t, trip := range trips {
		if len(trip.Assignments) != len(passengers) {
			return nil, fmt.Errorf("trip %d has %d seat assignments for %d passengers", t, len(trip.Assignments), len(passengers))
		}

		dates = append(dates, trip.Route.DateFrom)
		intervalIDs = append(intervalIDs, trip.Route.IntervalID)

		tripSeats := make([]string, 0, len(passengers))
		for _, assignment := range trip.Assignments {
			segmentIDs := trip.SegmentIDs
			if len(segmentIDs) == 0 {
				segmentIDs = trip.Route.IntervalIDs()
			}

			perSegment := make([]string, 0, len(segmentIDs))
			for _, segmentID := range segmentIDs {
				seat, ok := assignment.Seats[segmentID]
				if !ok {
					return nil, fmt.Errorf("passenger %d has no seat on segment %s", assignment.Passenger, segmentID)
				}
				perSegment = append(perSegment, seat)
			}

			tripSeats = append(tripSeats, strings.Join(perSegment, ","))
		}

		seats = append(seats, tripSeats)
	}

	payload := map[string]interface{}{
		"date":        dates,
		"interval_id": intervalIDs,
		"seat":        seats,
	}

	names := make([]string, len(passengers))
	surnames := make([]string, len(passengers))
	birthDates := make([]string, len(passengers))
	for i, passenger := range passengers {
		names[i] = passenger.Name
		surnames[i] = passenger.Surname
		birthDates[i] = passenger.BirthDate
	}
	payload["name"] = names
	payload["surname"] = surnames
	payload["birth_date"] = birthDates

	requirements := unionRequirements(trips)

	if requirements.doc {
		docTypes := make([]string, len(passengers))
		docNumbers := make([]string, len(passengers))
		for i, passenger := range passengers {
			docTypes[i] = passenger.DocType
			docNumbers[i] = passenger.DocNumber
		}
		payload["doc_type"] = docTypes
		payload["doc_number"] = docNumbers
	}

	if requirements.docExpire {
		expiry := make([]string, len(passengers))
		for i, passenger := range passengers {
			expiry[i] = passenger.DocExpireDate
		}
		payload["doc_expire_date"] = expiry
	}

	if requirements.gender {
		genders := make([]string, len(passengers))
		for i, passenger := range passengers {
			genders[i] = passenger.Gender
		}
		payload["gender"] = genders
	}

	if requirements.citizenship {
		citizenships := make([]string, len(passengers))
		for i, passenger := range passengers {
			citizenships[i] = passenger.Citizenship
		}
		payload["citizenship"] = citizenships
	}

	if discounts := collectSelections(trips, func(t TripMeta) map[int]string { return t.Discounts }); len(discounts) > 0 {
		payload["discount_id"] = discounts
	}

	baggage := collectSelections(trips, func(t TripMeta) map[int]string {
		if t.Baggage == nil {
			return nil
		}

		joined := map[int]string{}
		for passenger, ids := range t.Baggage {
			if len(ids) > 0 {
				joined[passenger] = strings.Join(ids, ",")
			}
		}
		return joined
	})
	if len(baggage) > 0 {
		payload["baggage"] = baggage
	}

	if common.Phone != "" {
		payload["phone"] = common.Phone
	}
	if common.Email != "" {
		payload["email"] = common.Email
	}
	if common.Currency != "" {
		payload["currency"] = common.Currency
	}
	if common.Lang != "" {
		payload["lang"] = common.Lang
	}
	if common.Promo != "" {
		payload["promocode_name"] = common.Promo
	}

	return payload, nil
}

type documentRequirements struct {
	doc         bool
	docExpire   bool
	gender      bool
	citizenship bool
}

func unionRequirements(trips []TripMeta) documentRequirements {
	var requirements documentRequirements

	for _, trip := range trips {
		requirements.doc = requirements.doc || trip.Route.NeedDoc.Bool()
		requirements.docExpire = requirements.docExpire || trip.Route.NeedDocExpireDate.Bool()
		requirements.gender = requirements.gender || trip.Route.NeedGender.Bool()
		requirements.citizenship = requirements.citizenship || trip.Route.NeedCitizenship.Bool()
	}

	return requirements
}

// collectSelections turns per-trip passenger-keyed selections into the
// provider's trip-indexed map-of-maps form, with string keys throughout.
func collectSelections(trips []TripMeta, pick func(TripMeta) map[int]string) map[string]map[string]string {
	selections := map[string]map[string]string{}

	for t, trip := range trips {
		perTrip := pick(trip)
		if len(perTrip) == 0 {
			continue
		}

		byPassenger := map[string]string{}
		for passenger, value := range perTrip {
			if value != "" {
				byPassenger[fmt.Sprintf("%d", passenger)] = value
			}
		}

		if len(byPassenger) > 0 {
			selections[fmt.Sprintf("%d", t)] = byPassenger
		}
	}

	return selections
}
