package cancellation

import (
	"context"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
)

// Executor issues cancellation requests. The provider answers a single-ticket
// cancel with flat ticket fields and a whole-order cancel with a ticket list
// plus order totals; both are folded into one result shape here so callers
// never see the difference.
type Executor struct {
	transport bussystem.Transport
}

func NewExecutor(transport bussystem.Transport) *Executor {
	return &Executor{transport: transport}
}

// CancelTicket cancels one ticket of an order.
func (e *Executor) CancelTicket(ctx context.Context, ticketID, security string) (*ctbs.CancellationResult, error) {
	if ticketID == "" || security == "" {
		return nil, bussystem.NewValidationError("ticket_id and security are required")
	}

	raw, err := e.post(ctx, map[string]interface{}{
		"ticket_id": ticketID,
		"security":  security,
	})
	if err != nil {
		return nil, err
	}

	result := decodeResult(raw, ctbs.CancellationScopeTicket)
	if result.TicketID == "" {
		result.TicketID = ticketID
	}

	return result, nil
}

// CancelOrder cancels every ticket of an order at once. Required when the
// provider marked the order cancel_only_order.
func (e *Executor) CancelOrder(ctx context.Context, orderID, security string) (*ctbs.CancellationResult, error) {
	if orderID == "" || security == "" {
		return nil, bussystem.NewValidationError("order_id and security are required")
	}

	raw, err := e.post(ctx, map[string]interface{}{
		"order_id": orderID,
		"security": security,
	})
	if err != nil {
		return nil, err
	}

	result := decodeResult(raw, ctbs.CancellationScopeOrder)
	if result.OrderID == "" {
		result.OrderID = orderID
	}

	return result, nil
}

func (e *Executor) post(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error) {
	raw, err := e.transport.Post(ctx, bussystem.EndpointCancelTicket, body)
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	record, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "unexpected cancel_ticket response shape"}
	}

	if root, ok := record["root"].(map[string]interface{}); ok {
		record = root
	}

	return record, nil
}

func decodeResult(record map[string]interface{}, scope ctbs.CancellationScope) *ctbs.CancellationResult {
	result := &ctbs.CancellationResult{
		Scope:    scope,
		OrderID:  textField(record, "order_id"),
		TicketID: textField(record, "ticket_id"),
		Currency: textField(record, "currency", "curency"),
	}

	if tickets := ticketEntries(record); len(tickets) > 0 {
		allCancelled := true

		for _, entry := range tickets {
			ticket := ctbs.CancelledTicket{
				TicketID:  textField(entry, "ticket_id"),
				Cancelled: flagSet(entry["cancel_ticket"]) || flagSet(entry["cancelled"]),
				MoneyBack: numberField(entry, "money_back_total", "money_back"),
				Provision: numberField(entry, "provision"),
			}

			result.Tickets = append(result.Tickets, ticket)
			result.RefundTotal += ticket.MoneyBack
			allCancelled = allCancelled && ticket.Cancelled

			if result.Currency == "" {
				result.Currency = textField(entry, "currency", "curency")
			}
		}

		result.Cancelled = allCancelled
	} else {
		result.Cancelled = flagSet(record["cancel_ticket"]) || flagSet(record["cancelled"])
		result.RefundTotal = numberField(record, "money_back_total", "money_back")
	}

	// Order totals, when given, override the per-ticket sum.
	if total := numberField(record, "money_back_total"); total != 0 && len(result.Tickets) > 0 {
		result.RefundTotal = total
	}

	return result
}

func ticketEntries(record map[string]interface{}) []map[string]interface{} {
	var entries []map[string]interface{}

	switch items := record["item"].(type) {
	case []interface{}:
		for _, item := range items {
			if entry, ok := item.(map[string]interface{}); ok {
				entries = append(entries, entry)
			}
		}
	case map[string]interface{}:
		// Single nested item still counts as a list of one, but only when
		// it actually describes a ticket.
		if textField(items, "ticket_id") != "" {
			entries = append(entries, items)
		}
	}

	return entries
}
