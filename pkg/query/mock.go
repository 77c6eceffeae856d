package query

import (
	"fmt"
	"strings"

	"github.com/starlines/starlines/pkg/ctbs"
)

// The mock dataset is deterministic: same inputs, same records, no
// randomness. It feeds the offline mode and the end-to-end tests.

var mockDataset = []ctbs.PointCity{
	{PointID: "1", Name: "Chișinău", LatinName: "Chisinau", CountryID: "1", CountryName: "Moldova", Currency: "MDL", Location: &ctbs.Location{Latitude: 47.0105, Longitude: 28.8638}, Stations: []ctbs.Station{{StationID: "10", Name: "Gara Centrală"}, {StationID: "11", Name: "Gara Nord"}}},
	{PointID: "2", Name: "Kyiv", LatinName: "Kyiv", CountryID: "2", CountryName: "Ukraine", Currency: "UAH", Location: &ctbs.Location{Latitude: 50.4501, Longitude: 30.5234}, Stations: []ctbs.Station{{StationID: "20", Name: "Central Bus Station"}}},
	{PointID: "3", Name: "Berlin", LatinName: "Berlin", CountryID: "3", CountryName: "Germany", Currency: "EUR", Location: &ctbs.Location{Latitude: 52.52, Longitude: 13.405}, Stations: []ctbs.Station{{StationID: "30", Name: "ZOB Berlin"}}},
	{PointID: "4", Name: "Praha", LatinName: "Praha", CountryID: "4", CountryName: "Czech Republic", Currency: "CZK", Location: &ctbs.Location{Latitude: 50.0755, Longitude: 14.4378}, Stations: []ctbs.Station{{StationID: "40", Name: "Florenc"}}},
	{PointID: "5", Name: "Warszawa", LatinName: "Warszawa", CountryID: "5", CountryName: "Poland", Currency: "PLN", Location: &ctbs.Location{Latitude: 52.2297, Longitude: 21.0122}, Stations: []ctbs.Station{{StationID: "50", Name: "Dworzec Zachodni"}}},
	{PointID: "6", Name: "București", LatinName: "Bucuresti", CountryID: "6", CountryName: "Romania", Currency: "RON", Location: &ctbs.Location{Latitude: 44.4268, Longitude: 26.1025}, Stations: []ctbs.Station{{StationID: "60", Name: "Autogara Militari"}}},
}

var mockCountryList = []ctbs.Country{
	{CountryID: "1", Name: "Moldova", Code: "MD", Currency: "MDL"},
	{CountryID: "2", Name: "Ukraine", Code: "UA", Currency: "UAH"},
	{CountryID: "3", Name: "Germany", Code: "DE", Currency: "EUR"},
	{CountryID: "4", Name: "Czech Republic", Code: "CZ", Currency: "CZK"},
	{CountryID: "5", Name: "Poland", Code: "PL", Currency: "PLN"},
	{CountryID: "6", Name: "Romania", Code: "RO", Currency: "RON"},
}

func mockAutocomplete(queryText string) []ctbs.PointCity {
	needle := strings.ToLower(queryText)

	var matches []ctbs.PointCity
	for _, point := range mockDataset {
		if strings.Contains(strings.ToLower(point.Name), needle) ||
			strings.Contains(strings.ToLower(point.LatinName), needle) {
			matches = append(matches, point)
		}
	}

	return matches
}

func mockCountries() []ctbs.Country {
	return mockCountryList
}

func mockCitiesByCountry(countryID string) []ctbs.PointCity {
	var matches []ctbs.PointCity
	for _, point := range mockDataset {
		if point.CountryID == countryID {
			matches = append(matches, point)
		}
	}

	return matches
}

func mockCountryGroups() []ctbs.CountryGroup {
	groups := make([]ctbs.CountryGroup, 0, len(mockCountryList))
	for _, country := range mockCountryList {
		groups = append(groups, ctbs.CountryGroup{
			Country: country,
			Points:  mockCitiesByCountry(country.CountryID),
		})
	}

	return groups
}

func mockRoutes(params ctbs.RouteSearchParams) []ctbs.RouteSummary {
	from := mockPointByID(params.IDFrom)
	to := mockPointByID(params.IDTo)
	if from == nil || to == nil {
		return []ctbs.RouteSummary{}
	}

	direct := ctbs.RouteSummary{
		IntervalID:    fmt.Sprintf("mock|%s|%s|%s|direct", from.PointID, to.PointID, params.Date),
		RouteName:     fmt.Sprintf("%s - %s Express", from.Name, to.Name),
		Carrier:       "Starlines",
		TransportType: ctbs.TransportTypeBus,
		Comfort:       "wifi,220v,wc",
		PointIDFrom:   ctbs.FlexString(from.PointID),
		PointFrom:     from.Name,
		PointIDTo:     ctbs.FlexString(to.PointID),
		PointTo:       to.Name,
		DateFrom:      params.Date,
		TimeFrom:      "08:00:00",
		DateTo:        params.Date,
		TimeTo:        "20:30:00",
		Price:         ctbs.FlexFloat(55),
		Currency:      "EUR",
		FreeSeats:     ctbs.FlexInt(17),

		RequestGetFreeSeats: true,
		RequestGetDiscount:  true,
		RequestGetBaggage:   true,
		HasPlan:             true,

		NeedDoc:    true,
		NeedGender: true,
	}

	if from.Stations != nil {
		direct.StationIDFrom = ctbs.FlexString(from.Stations[0].StationID)
		direct.StationFrom = from.Stations[0].Name
	}
	if to.Stations != nil {
		direct.StationIDTo = ctbs.FlexString(to.Stations[0].StationID)
		direct.StationTo = to.Stations[0].Name
	}

	transfer := ctbs.RouteSummary{
		IntervalID:    fmt.Sprintf("mock|%s|%s|%s|transfer", from.PointID, to.PointID, params.Date),
		RouteName:     fmt.Sprintf("%s - %s via Warszawa", from.Name, to.Name),
		Carrier:       "Starlines Partner",
		TransportType: ctbs.TransportTypeBus,
		PointIDFrom:   ctbs.FlexString(from.PointID),
		PointFrom:     from.Name,
		PointIDTo:     ctbs.FlexString(to.PointID),
		PointTo:       to.Name,
		DateFrom:      params.Date,
		TimeFrom:      "06:15:00",
		DateTo:        params.Date,
		TimeTo:        "23:45:00",
		Price:         ctbs.FlexFloat(43.5),
		Currency:      "EUR",
		FreeSeats:     ctbs.FlexInt(9),

		RequestGetFreeSeats: true,
		NeedDoc:             true,

		Trips: ctbs.TripList{
			{
				IntervalID:  fmt.Sprintf("mock|%s|5|%s|leg1", from.PointID, params.Date),
				RouteName:   fmt.Sprintf("%s - Warszawa", from.Name),
				PointIDFrom: ctbs.FlexString(from.PointID),
				PointIDTo:   ctbs.FlexString("5"),
				DateFrom:    params.Date,
				TimeFrom:    "06:15:00",
			},
			{
				IntervalID:  fmt.Sprintf("mock|5|%s|%s|leg2", to.PointID, params.Date),
				RouteName:   fmt.Sprintf("Warszawa - %s", to.Name),
				PointIDFrom: ctbs.FlexString("5"),
				PointIDTo:   ctbs.FlexString(to.PointID),
				DateTo:      params.Date,
				TimeTo:      "23:45:00",
			},
		},
		ChangeRoute: ctbs.ChangeSegmentList{
			{PointIDFrom: ctbs.FlexString(from.PointID), PointIDTo: ctbs.FlexString("5"), TransferTime: "01:10", ChangeStations: false},
			{PointIDFrom: ctbs.FlexString("5"), PointIDTo: ctbs.FlexString(to.PointID)},
		},
	}

	return []ctbs.RouteSummary{direct, transfer}
}

func mockPointByID(pointID string) *ctbs.PointCity {
	for i := range mockDataset {
		if mockDataset[i].PointID == pointID {
			return &mockDataset[i]
		}
	}

	return nil
}

func mockSeats(intervalID string) []ctbs.FreeSeatItem {
	seats := make([]ctbs.FreeSeatItem, 0, 20)
	for n := 1; n <= 20; n++ {
		seats = append(seats, ctbs.FreeSeatItem{
			SeatNumber: fmt.Sprintf("%d", n),
			SeatFree:   ctbs.FlexBool(n%7 != 0),
			SeatPrice:  ctbs.FlexFloat(55),
			Currency:   "EUR",
		})
	}

	return seats
}

func mockDiscounts() []ctbs.Discount {
	return []ctbs.Discount{
		{DiscountID: "3199", Name: "Children 0-5 years", Price: ctbs.FlexFloat(27.5), Currency: "EUR", MaxPerPerson: ctbs.FlexInt(1)},
		{DiscountID: "3200", Name: "Seniors 60+", Price: ctbs.FlexFloat(49.5), Currency: "EUR", MaxPerPerson: ctbs.FlexInt(1)},
	}
}

func mockBaggage() []ctbs.BaggageItem {
	return []ctbs.BaggageItem{
		{BaggageID: "81", Type: "small_baggage", Title: "Hand baggage", Price: ctbs.FlexFloat(0), Currency: "EUR", MaxPerPerson: ctbs.FlexInt(1), KgMax: ctbs.FlexInt(5)},
		{BaggageID: "82", Type: "large_baggage", Title: "Hold baggage", Price: ctbs.FlexFloat(10), Currency: "EUR", MaxPerPerson: ctbs.FlexInt(2), MaxInBus: ctbs.FlexInt(30), KgMax: ctbs.FlexInt(25)},
	}
}
