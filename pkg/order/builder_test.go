package order

import (
	"testing"

	"github.com/starlines/starlines/pkg/ctbs"
)

func twoPassengers() []ctbs.Passenger {
	return []ctbs.Passenger{
		{Name: "Ion", Surname: "Popescu", BirthDate: "1985-04-12", DocType: "passport", DocNumber: "AA123456", Gender: "M"},
		{Name: "Maria", Surname: "Popescu", BirthDate: "1990-09-03", DocType: "passport", DocNumber: "AA654321", Gender: "F"},
	}
}

func directTrip() TripMeta {
	return TripMeta{
		Route: ctbs.RouteSummary{
			IntervalID: "out|1|3",
			DateFrom:   "2024-03-15",
		},
		SegmentIDs: []string{"out|1|3"},
		Assignments: []ctbs.PassengerSeatAssignment{
			{Passenger: 0, Seats: map[string]string{"out|1|3": "2"}, Price: 55},
			{Passenger: 1, Seats: map[string]string{"out|1|3": "3"}, Price: 55},
		},
	}
}

func transferTrip() TripMeta {
	return TripMeta{
		Route: ctbs.RouteSummary{
			IntervalID: "ret|3|1",
			DateFrom:   "2024-03-20",
			NeedDoc:    true,
		},
		SegmentIDs: []string{"leg1", "leg2"},
		Assignments: []ctbs.PassengerSeatAssignment{
			{Passenger: 0, Seats: map[string]string{"leg1": "7", "leg2": "12"}},
			{Passenger: 1, Seats: map[string]string{"leg1": "8", "leg2": "13"}},
		},
	}
}

func TestBuildPayloadRoundTrip(t *testing.T) {
	payload, err := BuildPayload([]TripMeta{directTrip(), transferTrip()}, twoPassengers(), CommonData{
		Phone:    "+37360123456",
		Email:    "ion@example.com",
		Currency: "EUR",
	})
	if err != nil {
		t.Fatal(err)
	}

	dates := payload["date"].([]string)
	if len(dates) != 2 || dates[0] != "2024-03-15" || dates[1] != "2024-03-20" {
		t.Errorf("unexpected dates: %v", dates)
	}

	intervals := payload["interval_id"].([]string)
	if intervals[0] != "out|1|3" || intervals[1] != "ret|3|1" {
		t.Errorf("unexpected interval ids: %v", intervals)
	}

	seats := payload["seat"].([][]string)
	if len(seats) != 2 {
		t.Fatalf("expected per-trip seat lists, got %v", seats)
	}
	// One entry per passenger, segments comma-joined in segment order.
	if seats[0][0] != "2" || seats[0][1] != "3" {
		t.Errorf("unexpected direct trip seats: %v", seats[0])
	}
	if seats[1][0] != "7,12" || seats[1][1] != "8,13" {
		t.Errorf("unexpected transfer trip seats: %v", seats[1])
	}

	names := payload["name"].([]string)
	if names[0] != "Ion" || names[1] != "Maria" {
		t.Errorf("unexpected names: %v", names)
	}

	// The transfer trip needs documents, so the union demands them.
	docNumbers, ok := payload["doc_number"].([]string)
	if !ok || docNumbers[0] != "AA123456" {
		t.Errorf("expected doc_number present, got %v", payload["doc_number"])
	}

	// Nothing demanded gender, so it must be absent entirely.
	if _, present := payload["gender"]; present {
		t.Error("expected gender absent when no route demands it")
	}

	if payload["phone"] != "+37360123456" || payload["currency"] != "EUR" {
		t.Errorf("unexpected common fields: phone=%v currency=%v", payload["phone"], payload["currency"])
	}
}

func TestBuildPayloadSelections(t *testing.T) {
	trip := directTrip()
	trip.Discounts = map[int]string{1: "3199"}
	trip.Baggage = map[int][]string{0: {"81", "82"}}

	payload, err := BuildPayload([]TripMeta{trip}, twoPassengers(), CommonData{})
	if err != nil {
		t.Fatal(err)
	}

	discounts := payload["discount_id"].(map[string]map[string]string)
	if discounts["0"]["1"] != "3199" {
		t.Errorf("unexpected discount selection: %v", discounts)
	}
	if _, present := discounts["0"]["0"]; present {
		t.Error("passenger 0 selected no discount")
	}

	baggage := payload["baggage"].(map[string]map[string]string)
	if baggage["0"]["0"] != "81,82" {
		t.Errorf("unexpected baggage selection: %v", baggage)
	}
}

func TestBuildPayloadMissingSeat(t *testing.T) {
	trip := directTrip()
	delete(trip.Assignments[1].Seats, "out|1|3")

	if _, err := BuildPayload([]TripMeta{trip}, twoPassengers(), CommonData{}); err == nil {
		t.Fatal("expected error for passenger without a seat on a segment")
	}
}

func TestBuildPayloadAssignmentCountMismatch(t *testing.T) {
	trip := directTrip()
	trip.Assignments = trip.Assignments[:1]

	if _, err := BuildPayload([]TripMeta{trip}, twoPassengers(), CommonData{}); err == nil {
		t.Fatal("expected error when assignments do not cover every passenger")
	}
}

func TestBuildPayloadEmptyInputs(t *testing.T) {
	if _, err := BuildPayload(nil, twoPassengers(), CommonData{}); err == nil {
		t.Error("expected error for no trips")
	}
	if _, err := BuildPayload([]TripMeta{directTrip()}, nil, CommonData{}); err == nil {
		t.Error("expected error for no passengers")
	}
}
