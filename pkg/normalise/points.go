package normalise

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/starlines/starlines/pkg/ctbs"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CityList converts a raw points payload into validated, deduplicated,
// locale-sorted PointCity records. Individual malformed records are dropped
// with a warning; only an unrecognisable container shape is an error.
func CityList(raw interface{}, lang string) ([]ctbs.PointCity, error) {
	items, err := ExtractItems(raw)
	if err != nil {
		return nil, err
	}

	byID := map[string]ctbs.PointCity{}

	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			log.Warn().Msg("Skipping point record that is not an object")
			continue
		}

		point := pointFromRecord(record, lang)

		if err := point.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed point record")
			continue
		}

		// Last write wins on duplicate ids.
		byID[point.PointID] = point
	}

	points := make([]ctbs.PointCity, 0, len(byID))
	for _, point := range byID {
		points = append(points, point)
	}

	sortByName(points, lang, func(p ctbs.PointCity) string { return p.Name })

	return points, nil
}

// CountryList converts a raw country payload into validated Country records.
func CountryList(raw interface{}, lang string) ([]ctbs.Country, error) {
	items, err := ExtractItems(raw)
	if err != nil {
		return nil, err
	}

	byID := map[string]ctbs.Country{}

	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			log.Warn().Msg("Skipping country record that is not an object")
			continue
		}

		country := countryFromRecord(record, lang)

		if err := country.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed country record")
			continue
		}

		byID[country.CountryID] = country
	}

	countries := make([]ctbs.Country, 0, len(byID))
	for _, country := range byID {
		countries = append(countries, country)
	}

	sortByName(countries, lang, func(c ctbs.Country) string { return c.Name })

	return countries, nil
}

// CountryGroups converts the grouped points payload: one record per country
// with its cities nested under points. A country whose nested point list is
// malformed still appears, with no points.
func CountryGroups(raw interface{}, lang string) ([]ctbs.CountryGroup, error) {
	items, err := ExtractItems(raw)
	if err != nil {
		return nil, err
	}

	groups := []ctbs.CountryGroup{}

	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			log.Warn().Msg("Skipping country group record that is not an object")
			continue
		}

		country := countryFromRecord(record, lang)
		if err := country.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed country group record")
			continue
		}

		points, err := CityList(record["points"], lang)
		if err != nil {
			points = []ctbs.PointCity{}
		}

		groups = append(groups, ctbs.CountryGroup{
			Country: country,
			Points:  points,
		})
	}

	sortByName(groups, lang, func(g ctbs.CountryGroup) string { return g.Name })

	return groups, nil
}

func pointFromRecord(record map[string]interface{}, lang string) ctbs.PointCity {
	point := ctbs.PointCity{
		PointID: stringField(record, "point_id", "id"),
		Name: stringField(record,
			fmt.Sprintf("point_%s_name", lang),
			"point_name",
			"name",
			"point_latin_name",
		),
		LatinName:   stringField(record, "point_latin_name", "latin_name"),
		CountryID:   stringField(record, "country_id"),
		CountryName: stringField(record, "country_name", fmt.Sprintf("country_%s", lang)),
		// The provider spells currency both ways depending on endpoint.
		Currency: stringField(record, "currency", "curency"),
	}

	point.Location = locationFromRecord(record)

	point.Stations = stationsFromRecord(record["stations"])
	point.Airports = stationsFromRecord(record["airports"])

	return point
}

func countryFromRecord(record map[string]interface{}, lang string) ctbs.Country {
	return ctbs.Country{
		CountryID: stringField(record, "country_id", "id"),
		Name: stringField(record,
			fmt.Sprintf("country_%s", lang),
			"country_name",
			"name",
		),
		Code:     stringField(record, "country_code", "code"),
		Currency: stringField(record, "currency", "curency"),
	}
}

func locationFromRecord(record map[string]interface{}) *ctbs.Location {
	if nested, ok := record["location"].(map[string]interface{}); ok {
		record = nested
	}

	latitude, hasLatitude := floatField(record, "latitude")
	longitude, hasLongitude := floatField(record, "longitude")

	if !hasLatitude || !hasLongitude {
		return nil
	}

	return &ctbs.Location{Latitude: latitude, Longitude: longitude}
}

func stationsFromRecord(raw interface{}) []ctbs.Station {
	items, err := ExtractItems(raw)
	if err != nil || len(items) == 0 {
		return nil
	}

	var stations []ctbs.Station
	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		station := ctbs.Station{
			StationID: stringField(record, "station_id", "id"),
			Name:      stringField(record, "station_name", "name"),
			Location:  locationFromRecord(record),
		}

		if station.StationID == "" {
			continue
		}

		stations = append(stations, station)
	}

	return stations
}

// stringField coalesces the first non-empty of the given keys, converting
// bare numbers to their decimal form.
func stringField(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch value := record[key].(type) {
		case string:
			if value != "" {
				return value
			}
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(value)
		}
	}

	return ""
}

func floatField(record map[string]interface{}, key string) (float64, bool) {
	switch value := record[key].(type) {
	case float64:
		return value, true
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func sortByName[T any](records []T, lang string, name func(T) string) {
	collator := collate.New(language.Make(lang))

	slices.SortStableFunc(records, func(a, b T) int {
		return collator.CompareString(name(a), name(b))
	})
}
