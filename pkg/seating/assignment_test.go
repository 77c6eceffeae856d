package seating

import (
	"errors"
	"testing"

	"github.com/starlines/starlines/pkg/ctbs"
)

func segment(id string, seats ...ctbs.FreeSeatItem) ctbs.SegmentSeats {
	return ctbs.SegmentSeats{SegmentID: id, Seats: seats}
}

func seat(number string, free bool, price float64) ctbs.FreeSeatItem {
	return ctbs.FreeSeatItem{
		SeatNumber: number,
		SeatFree:   ctbs.FlexBool(free),
		SeatPrice:  ctbs.FlexFloat(price),
	}
}

func TestAssignSeatsGreedyDeterministic(t *testing.T) {
	tripSeats := []ctbs.SegmentSeats{
		segment("leg1",
			seat("1", false, 40),
			seat("2", true, 40),
			seat("3", true, 40),
			seat("4", true, 40),
		),
		segment("leg2",
			seat("7", true, 15),
			seat("8", true, 15),
			seat("9", false, 15),
			seat("10", true, 15),
		),
	}

	assignments, err := AssignSeats(tripSeats, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}

	first := assignments[0]
	if first.Seats["leg1"] != "2" || first.Seats["leg2"] != "7" {
		t.Errorf("passenger 0: expected seats 2/7, got %v", first.Seats)
	}
	if first.Price != 55 {
		t.Errorf("passenger 0: expected accumulated price 55, got %v", first.Price)
	}

	second := assignments[1]
	if second.Seats["leg1"] != "3" || second.Seats["leg2"] != "8" {
		t.Errorf("passenger 1: expected seats 3/8, got %v", second.Seats)
	}

	// Taken seats are marked occupied in the shared lists.
	if tripSeats[0].FreeCount() != 1 || tripSeats[1].FreeCount() != 1 {
		t.Errorf("expected 1 free seat left per segment, got %d/%d",
			tripSeats[0].FreeCount(), tripSeats[1].FreeCount())
	}
}

func TestAssignSeatsInsufficientLeavesSeatsUntouched(t *testing.T) {
	tripSeats := []ctbs.SegmentSeats{
		segment("leg1", seat("1", true, 10), seat("2", true, 10), seat("3", true, 10)),
		segment("leg2", seat("7", true, 10), seat("8", false, 10)),
	}

	_, err := AssignSeats(tripSeats, 2)

	var insufficient *InsufficientSeatsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientSeatsError, got %v", err)
	}
	if insufficient.SegmentID != "leg2" || insufficient.Free != 1 || insufficient.Passengers != 2 {
		t.Errorf("unexpected error detail: %+v", insufficient)
	}

	// The up-front check must run before any seat is taken.
	if tripSeats[0].FreeCount() != 3 {
		t.Errorf("expected leg1 untouched with 3 free seats, got %d", tripSeats[0].FreeCount())
	}
}

func TestAssignSeatsRejectsNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		if _, err := AssignSeats(nil, count); err == nil {
			t.Errorf("count %d: expected error", count)
		}
	}
}

func TestAssignSeatsSequentialBookingsExhaustSegment(t *testing.T) {
	tripSeats := []ctbs.SegmentSeats{
		segment("leg1", seat("1", true, 10), seat("2", true, 10), seat("3", true, 10)),
	}

	if _, err := AssignSeats(tripSeats, 2); err != nil {
		t.Fatal(err)
	}

	// One seat left; a second two-passenger attempt must fail cleanly.
	_, err := AssignSeats(tripSeats, 2)
	var insufficient *InsufficientSeatsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientSeatsError on exhausted segment, got %v", err)
	}

	if _, err := AssignSeats(tripSeats, 1); err != nil {
		t.Errorf("expected final seat to still be assignable, got %v", err)
	}
}
