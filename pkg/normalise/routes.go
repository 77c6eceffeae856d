package normalise

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/starlines/starlines/pkg/ctbs"
)

// RouteList converts a raw route-search payload into RouteSummary records.
// Records without an interval_id are unusable downstream and are dropped.
func RouteList(raw interface{}) ([]ctbs.RouteSummary, error) {
	return decodeList(raw, "route", func(route *ctbs.RouteSummary) bool {
		return route.IntervalID != ""
	})
}

// SeatList converts one segment's free-seat payload.
func SeatList(raw interface{}) ([]ctbs.FreeSeatItem, error) {
	return decodeList(raw, "seat", func(seat *ctbs.FreeSeatItem) bool {
		return seat.SeatNumber != ""
	})
}

// DiscountList converts a route's discount payload.
func DiscountList(raw interface{}) ([]ctbs.Discount, error) {
	return decodeList(raw, "discount", func(discount *ctbs.Discount) bool {
		return discount.DiscountID != ""
	})
}

// BaggageList converts a route's baggage payload.
func BaggageList(raw interface{}) ([]ctbs.BaggageItem, error) {
	return decodeList(raw, "baggage", func(baggage *ctbs.BaggageItem) bool {
		return baggage.BaggageID != ""
	})
}

// decodeList runs ExtractItems then decodes each record through a JSON
// round-trip, which is what lets the Flex types absorb the provider's loose
// scalar typing in one place. Bad records warn and skip.
func decodeList[T any](raw interface{}, kind string, valid func(*T) bool) ([]T, error) {
	items, err := ExtractItems(raw)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(items))

	for _, item := range items {
		encoded, err := json.Marshal(item)
		if err != nil {
			log.Warn().Err(err).Str("kind", kind).Msg("Skipping unencodable record")
			continue
		}

		var record T
		if err := json.Unmarshal(encoded, &record); err != nil {
			log.Warn().Err(err).Str("kind", kind).Msg("Skipping malformed record")
			continue
		}

		if !valid(&record) {
			log.Warn().Str("kind", kind).Msg("Skipping record that failed validation")
			continue
		}

		records = append(records, record)
	}

	return records, nil
}
