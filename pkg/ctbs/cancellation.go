package ctbs

// CancellationEstimate is a read-only projection of one ticket's refund
// position, derived from the provider's cancellation rates. Never persisted.
type CancellationEstimate struct {
	TicketID string `groups:"basic" json:"ticket_id"`

	RefundAmount    float64 `groups:"basic" json:"refund_amount"`
	RetentionAmount float64 `groups:"basic" json:"retention_amount"`
	BaggageRefund   float64 `groups:"basic" json:"baggage_refund"`
	Currency        string  `groups:"basic" json:"currency,omitempty"`

	CancelRate float64 `groups:"detailed" json:"cancel_rate"`

	// CanCancelIndividual is false when the provider marked the order
	// cancel_only_order: the ticket may then only go down with the whole
	// order.
	CanCancelIndividual bool `groups:"basic" json:"can_cancel_individual"`
}

type CancellationScope string

const (
	CancellationScopeTicket CancellationScope = "ticket"
	CancellationScopeOrder  CancellationScope = "order"
)

type CancelledTicket struct {
	TicketID  string  `groups:"basic" json:"ticket_id"`
	Cancelled bool    `groups:"basic" json:"cancelled"`
	MoneyBack float64 `groups:"basic" json:"money_back"`
	Provision float64 `groups:"detailed" json:"provision,omitempty"`
}

// CancellationResult is the single shape both ticket and whole-order
// cancellations are normalized into, so consumers never branch on which
// variant the provider answered with.
type CancellationResult struct {
	Scope CancellationScope `groups:"basic" json:"scope"`

	OrderID  string `groups:"basic" json:"order_id,omitempty"`
	TicketID string `groups:"basic" json:"ticket_id,omitempty"`

	Cancelled   bool    `groups:"basic" json:"cancelled"`
	RefundTotal float64 `groups:"basic" json:"refund_total"`
	Currency    string  `groups:"basic" json:"currency,omitempty"`

	Tickets []CancelledTicket `groups:"detailed" json:"tickets,omitempty"`
}
