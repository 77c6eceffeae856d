package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
)

// Workflow drives an order through the provider's lifecycle: reserve, pay,
// poll. Store is optional; when present every state change is persisted.
type Workflow struct {
	transport bussystem.Transport
	store     *Store
}

func NewWorkflow(transport bussystem.Transport, store *Store) *Workflow {
	return &Workflow{transport: transport, store: store}
}

// Submit creates the reservation. The returned info carries the security
// token needed for every later call on this order.
func (w *Workflow) Submit(ctx context.Context, trips []TripMeta, passengers []ctbs.Passenger, common CommonData) (*ctbs.ReservationInfo, error) {
	requirements := RequirementsForTrips(trips)
	problems := ValidateContact(common)
	problems = append(problems, ValidatePassengers(passengers, requirements, time.Now())...)
	if len(problems) > 0 {
		return nil, bussystem.NewValidationError(problems.Error())
	}

	payload, err := BuildPayload(trips, passengers, common)
	if err != nil {
		return nil, bussystem.NewValidationError(err.Error())
	}

	raw, err := w.transport.Post(ctx, bussystem.EndpointNewOrder, payload)
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	reservation, err := decodeReservation(raw)
	if err != nil {
		return nil, err
	}

	if reservation.Status == "" {
		reservation.Status = ctbs.OrderStatusReserveOK
	}
	reservation.CreatedAt = time.Now()

	if w.store != nil {
		if err := w.store.Save(ctx, reservation); err != nil {
			log.Warn().Err(err).Str("order_id", string(reservation.OrderID)).Msg("Failed to persist reservation")
		}
	}

	return reservation, nil
}

// PaymentResult is the outcome of buy_ticket for one order.
type PaymentResult struct {
	OrderID    string           `groups:"basic" json:"order_id"`
	Status     ctbs.OrderStatus `groups:"basic" json:"status"`
	PriceTotal float64          `groups:"basic" json:"price_total"`
	Currency   string           `groups:"basic" json:"currency,omitempty"`
	Tickets    []PaidTicket     `groups:"basic" json:"tickets,omitempty"`
}

type PaidTicket struct {
	TicketID string  `groups:"basic" json:"ticket_id"`
	Security string  `groups:"detailed" json:"security,omitempty"`
	Price    float64 `groups:"basic" json:"price"`
	Link     string  `groups:"basic" json:"link,omitempty"`
}

// Pay finalises the reservation within its hold window.
func (w *Workflow) Pay(ctx context.Context, orderID, security string) (*PaymentResult, error) {
	if orderID == "" || security == "" {
		return nil, bussystem.NewValidationError("order_id and security are required")
	}

	raw, err := w.transport.Post(ctx, bussystem.EndpointBuyTicket, map[string]interface{}{
		"order_id": orderID,
		"security": security,
	})
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	result, err := decodePayment(raw, orderID)
	if err != nil {
		return nil, err
	}

	if w.store != nil {
		if err := w.store.UpdateStatus(ctx, orderID, result.Status); err != nil {
			log.Warn().Err(err).Str("order_id", orderID).Msg("Failed to persist payment status")
		}
	}

	return result, nil
}

// OrderDetails is the current provider-side view of an order.
type OrderDetails struct {
	OrderID    string           `groups:"basic" json:"order_id"`
	Status     ctbs.OrderStatus `groups:"basic" json:"status"`
	PriceTotal float64          `groups:"basic" json:"price_total"`
	Currency   string           `groups:"basic" json:"currency,omitempty"`

	Raw map[string]interface{} `groups:"internal" json:"-"`
}

// Fetch reads the order's current state from the provider.
func (w *Workflow) Fetch(ctx context.Context, orderID, security string) (*OrderDetails, error) {
	if orderID == "" || security == "" {
		return nil, bussystem.NewValidationError("order_id and security are required")
	}

	raw, err := w.transport.Post(ctx, bussystem.EndpointGetOrder, map[string]interface{}{
		"order_id": orderID,
		"security": security,
	})
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	return decodeDetails(raw, orderID)
}

// Status satisfies StatusFetcher for the monitor.
func (w *Workflow) Status(ctx context.Context, orderID, security string) (ctbs.OrderStatus, error) {
	details, err := w.Fetch(ctx, orderID, security)
	if err != nil {
		return "", err
	}
	return details.Status, nil
}

func decodeReservation(raw interface{}) (*ctbs.ReservationInfo, error) {
	record := rootRecord(raw)
	if record == nil {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "unexpected new_order response shape"}
	}

	var reservation ctbs.ReservationInfo
	if err := remarshal(record, &reservation); err != nil {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: err.Error()}
	}

	if reservation.OrderID == "" {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "new_order response missing order_id"}
	}

	return &reservation, nil
}

func decodePayment(raw interface{}, orderID string) (*PaymentResult, error) {
	record := rootRecord(raw)
	if record == nil {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "unexpected buy_ticket response shape"}
	}

	result := &PaymentResult{
		OrderID:    orderID,
		Status:     ctbs.OrderStatusBuyOK,
		PriceTotal: floatValue(record["price_total"]),
		Currency:   stringValue(record["currency"]),
	}

	if status := stringValue(record["status"]); status != "" {
		result.Status = ctbs.OrderStatus(status)
	}

	// Tickets arrive either as item list or as indexed keys "0", "1", ...
	if items, ok := record["item"].([]interface{}); ok {
		for _, item := range items {
			if ticket := decodeTicket(item); ticket != nil {
				result.Tickets = append(result.Tickets, *ticket)
			}
		}
	} else {
		for i := 0; ; i++ {
			item, ok := record[fmt.Sprintf("%d", i)]
			if !ok {
				break
			}
			if ticket := decodeTicket(item); ticket != nil {
				result.Tickets = append(result.Tickets, *ticket)
			}
		}
	}

	return result, nil
}

func decodeTicket(item interface{}) *PaidTicket {
	record, ok := item.(map[string]interface{})
	if !ok {
		return nil
	}

	ticketID := stringValue(record["ticket_id"])
	if ticketID == "" {
		ticketID = stringValue(record["transaction_id"])
	}
	if ticketID == "" {
		return nil
	}

	return &PaidTicket{
		TicketID: ticketID,
		Security: stringValue(record["security"]),
		Price:    floatValue(record["price"]),
		Link:     stringValue(record["link"]),
	}
}

func decodeDetails(raw interface{}, orderID string) (*OrderDetails, error) {
	record := rootRecord(raw)
	if record == nil {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "unexpected get_order response shape"}
	}

	details := &OrderDetails{
		OrderID:    orderID,
		Status:     ctbs.OrderStatus(stringValue(record["status"])),
		PriceTotal: floatValue(record["price_total"]),
		Currency:   stringValue(record["currency"]),
		Raw:        record,
	}

	if id := stringValue(record["order_id"]); id != "" {
		details.OrderID = id
	}

	return details, nil
}

// rootRecord unwraps the optional root envelope the provider sometimes adds.
func rootRecord(raw interface{}) map[string]interface{} {
	record, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	if root, ok := record["root"].(map[string]interface{}); ok {
		return root
	}

	if order, ok := record["order"].(map[string]interface{}); ok {
		return order
	}

	return record
}

func remarshal(record map[string]interface{}, target interface{}) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, target)
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

func floatValue(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		var parsed float64
		fmt.Sscanf(v, "%g", &parsed)
		return parsed
	default:
		return 0
	}
}
