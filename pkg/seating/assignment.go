package seating

import (
	"fmt"

	"github.com/starlines/starlines/pkg/ctbs"
)

// InsufficientSeatsError identifies the first segment that cannot carry the
// requested passenger count.
type InsufficientSeatsError struct {
	SegmentID  string
	Free       int
	Passengers int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("segment %s has %d free seats for %d passengers", e.SegmentID, e.Free, e.Passengers)
}

// AssignSeats gives every passenger one seat on every segment. Availability
// is checked for all segments up front, before any seat is taken, so a
// failure never leaves a half-assigned booking.
//
// Assignment is greedy and deterministic: passengers are walked in index
// order and each takes the next free seat in list order on each segment,
// first available rather than price-optimised. Taken seats are marked occupied in
// the shared lists so no seat is ever handed out twice.
func AssignSeats(tripSeats []ctbs.SegmentSeats, passengerCount int) ([]ctbs.PassengerSeatAssignment, error) {
	if passengerCount <= 0 {
		return nil, fmt.Errorf("passenger count must be positive, got %d", passengerCount)
	}

	for _, segment := range tripSeats {
		if free := segment.FreeCount(); free < passengerCount {
			return nil, &InsufficientSeatsError{
				SegmentID:  segment.SegmentID,
				Free:       free,
				Passengers: passengerCount,
			}
		}
	}

	assignments := make([]ctbs.PassengerSeatAssignment, passengerCount)

	for passenger := 0; passenger < passengerCount; passenger++ {
		assignment := ctbs.PassengerSeatAssignment{
			Passenger: passenger,
			Seats:     map[string]string{},
		}

		for s := range tripSeats {
			segment := &tripSeats[s]

			for i := range segment.Seats {
				seat := &segment.Seats[i]
				if !seat.SeatFree.Bool() {
					continue
				}

				assignment.Seats[segment.SegmentID] = seat.SeatNumber
				assignment.Price += seat.SeatPrice.Float64()
				seat.SeatFree = false
				break
			}
		}

		assignments[passenger] = assignment
	}

	return assignments, nil
}
