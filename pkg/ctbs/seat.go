package ctbs

// FreeSeatItem is the source of truth for availability of one seat on one
// segment. Assignment marks items occupied in place so later passengers in
// the same booking attempt cannot reuse them.
type FreeSeatItem struct {
	SeatNumber string    `groups:"basic" json:"seat_number"`
	SeatFree   FlexBool  `groups:"basic" json:"seat_free"`
	SeatPrice  FlexFloat `groups:"basic" json:"seat_price,omitempty"`
	Currency   string    `groups:"detailed" json:"seat_curency,omitempty"`
}

// SegmentSeats is the availability list for one segment of a trip, keyed by
// the interval id the seats were fetched for.
type SegmentSeats struct {
	SegmentID string         `groups:"basic" json:"segment_id"`
	Seats     []FreeSeatItem `groups:"basic" json:"seats"`
}

// FreeCount returns how many seats are still assignable.
func (s *SegmentSeats) FreeCount() int {
	count := 0
	for _, seat := range s.Seats {
		if seat.SeatFree.Bool() {
			count++
		}
	}

	return count
}

// PassengerSeatAssignment maps segment id to the seat number one passenger
// was given, with the accumulated seat price across segments. Built once per
// booking attempt and treated as immutable after order submission.
type PassengerSeatAssignment struct {
	Passenger int               `groups:"basic" json:"passenger"`
	Seats     map[string]string `groups:"basic" json:"seats"`
	Price     float64           `groups:"basic" json:"price"`
}

type Discount struct {
	DiscountID   string    `groups:"basic" json:"discount_id"`
	Name         string    `groups:"basic" json:"discount_name,omitempty"`
	Price        FlexFloat `groups:"basic" json:"discount_price,omitempty"`
	Currency     string    `groups:"detailed" json:"currency,omitempty"`
	MaxPerPerson FlexInt   `groups:"detailed" json:"max_per_person,omitempty"`
	MaxInBus     FlexInt   `groups:"detailed" json:"max_in_bus,omitempty"`
}

type BaggageItem struct {
	BaggageID    string    `groups:"basic" json:"baggage_id"`
	Type         string    `groups:"basic" json:"baggage_type,omitempty"`
	Title        string    `groups:"basic" json:"baggage_title,omitempty"`
	Price        FlexFloat `groups:"basic" json:"price,omitempty"`
	Currency     string    `groups:"detailed" json:"currency,omitempty"`
	MaxPerPerson FlexInt   `groups:"detailed" json:"max_per_person,omitempty"`
	MaxInBus     FlexInt   `groups:"detailed" json:"max_in_bus,omitempty"`
	KgMax        FlexInt   `groups:"detailed" json:"kg,omitempty"`
}
