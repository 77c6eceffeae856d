package normalise

import (
	"testing"
)

func TestRouteListDecodesMixedTyping(t *testing.T) {
	raw := decode(t, `{"root":{"item":[
		{"interval_id":"8669|17919|Miory","route_name":"Minsk - Warszawa","price":"45.50","free_seats":"12","request_get_free_seats":"1","need_doc":1},
		{"interval_id":"local|123","price":39,"request_get_free_seats":0}
	]}}`)

	routes, err := RouteList(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}

	first := routes[0]
	if first.Price.Float64() != 45.5 {
		t.Errorf("expected stringy price parsed to 45.5, got %v", first.Price)
	}
	if first.FreeSeats.Int() != 12 {
		t.Errorf("expected stringy free_seats parsed to 12, got %v", first.FreeSeats)
	}
	if !first.RequestGetFreeSeats.Bool() {
		t.Error("expected request_get_free_seats \"1\" to be true")
	}
	if !first.NeedDoc.Bool() {
		t.Error("expected need_doc 1 to be true")
	}

	if routes[1].RequestGetFreeSeats.Bool() {
		t.Error("expected request_get_free_seats 0 to be false")
	}
}

func TestRouteListDropsRecordsWithoutIntervalID(t *testing.T) {
	raw := decode(t, `[
		{"interval_id":"good","price":10},
		{"route_name":"no interval id","price":10}
	]`)

	routes, err := RouteList(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(routes) != 1 || routes[0].IntervalID != "good" {
		t.Fatalf("expected only the keyed route to survive, got %#v", routes)
	}
}

func TestRouteListKeepsTransferLegs(t *testing.T) {
	raw := decode(t, `[{
		"interval_id":"main",
		"trips":{"interval_id":"leg1","route_name":"single leg as object"}
	}]`)

	routes, err := RouteList(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	if len(routes[0].Trips) != 1 || routes[0].Trips[0].IntervalID != "leg1" {
		t.Errorf("expected single trip object coerced to list, got %#v", routes[0].Trips)
	}
}

func TestSeatListDecodesCurencySpelling(t *testing.T) {
	raw := decode(t, `{"root":{"item":[
		{"seat_number":"5","seat_free":"1","seat_price":"55","seat_curency":"EUR"},
		{"seat_number":"6","seat_free":0},
		{"seat_free":"1"}
	]}}`)

	seats, err := SeatList(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(seats) != 2 {
		t.Fatalf("expected 2 seats (unnumbered dropped), got %d", len(seats))
	}

	if !seats[0].SeatFree.Bool() || seats[0].Currency != "EUR" || seats[0].SeatPrice.Float64() != 55 {
		t.Errorf("unexpected first seat: %#v", seats[0])
	}
	if seats[1].SeatFree.Bool() {
		t.Error("expected seat 6 occupied")
	}
}

func TestDiscountAndBaggageLists(t *testing.T) {
	discounts, err := DiscountList(decode(t, `{"item":[{"discount_id":"34","discount_name":"Student","discount_price":"31.50"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(discounts) != 1 || discounts[0].Price.Float64() != 31.5 {
		t.Fatalf("unexpected discounts: %#v", discounts)
	}

	baggage, err := BaggageList(decode(t, `{"item":[{"baggage_id":"81","baggage_type":"small_baggage","price":5,"kg":"10"},{"baggage_type":"no id"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(baggage) != 1 || baggage[0].KgMax.Int() != 10 {
		t.Fatalf("unexpected baggage: %#v", baggage)
	}
}
