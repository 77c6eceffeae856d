package ctbs

import "time"

type Passenger struct {
	Name      string `groups:"basic" json:"name"`
	Surname   string `groups:"basic" json:"surname"`
	BirthDate string `groups:"basic" json:"birth_date"`
	Phone     string `groups:"basic" json:"phone,omitempty"`
	Email     string `groups:"detailed" json:"email,omitempty"`

	Gender        string `groups:"detailed" json:"gender,omitempty"`
	Citizenship   string `groups:"detailed" json:"citizenship,omitempty"`
	DocType       string `groups:"detailed" json:"doc_type,omitempty"`
	DocNumber     string `groups:"detailed" json:"doc_number,omitempty"`
	DocExpireDate string `groups:"detailed" json:"doc_expire_date,omitempty"`
}

type OrderStatus string

const (
	OrderStatusReserve      OrderStatus = "reserve"
	OrderStatusReserveOK    OrderStatus = "reserve_ok"
	OrderStatusConfirmation OrderStatus = "confirmation"
	OrderStatusBuy          OrderStatus = "buy"
	OrderStatusBuyOK        OrderStatus = "buy_ok"
	OrderStatusPaid         OrderStatus = "paid"
	OrderStatusCancel       OrderStatus = "cancel"
	OrderStatusExpired      OrderStatus = "expired"
)

// Paid reports whether the status is a successful terminal payment state.
func (s OrderStatus) Paid() bool {
	return s == OrderStatusBuy || s == OrderStatusBuyOK || s == OrderStatusPaid
}

// Terminal reports whether any further mutation of the order is invalid.
func (s OrderStatus) Terminal() bool {
	return s.Paid() || s == OrderStatusCancel || s == OrderStatusExpired
}

// ReservationTimeLayout is the provider's timestamp format for
// reservation_until fields, expressed in the dealer's timezone.
const ReservationTimeLayout = "2006-01-02 15:04:05"

// ReservationInfo is the result of order creation. Security is the token
// required by every subsequent operation on this order.
type ReservationInfo struct {
	OrderID  FlexString `groups:"basic" json:"order_id" bson:"order_id"`
	Security FlexString `groups:"detailed" json:"security" bson:"security"`

	ReservationUntil string    `groups:"basic" json:"reservation_until" bson:"reservation_until"`
	PriceTotal       FlexFloat `groups:"basic" json:"price_total" bson:"price_total"`
	Currency         string    `groups:"basic" json:"currency,omitempty" bson:"currency"`

	Status OrderStatus `groups:"basic" json:"status,omitempty" bson:"status"`

	CreatedAt time.Time `groups:"detailed" json:"created_at,omitempty" bson:"created_at"`
}

// ReservationDeadline parses ReservationUntil in the given location. The
// zero time is returned when the provider sent nothing usable, which callers
// treat as "no countdown".
func (r *ReservationInfo) ReservationDeadline(loc *time.Location) time.Time {
	if r.ReservationUntil == "" {
		return time.Time{}
	}

	deadline, err := time.ParseInLocation(ReservationTimeLayout, r.ReservationUntil, loc)
	if err != nil {
		return time.Time{}
	}

	return deadline
}
