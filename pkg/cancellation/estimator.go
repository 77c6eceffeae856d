package cancellation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/util"
)

// Estimator fetches refund positions from the provider before anything is
// actually cancelled.
type Estimator struct {
	transport bussystem.Transport
}

func NewEstimator(transport bussystem.Transport) *Estimator {
	return &Estimator{transport: transport}
}

// TicketRef identifies one ticket within an order for estimation.
type TicketRef struct {
	TicketID string
	Security string
}

// TicketEstimate fetches the refund position for a single ticket.
func (e *Estimator) TicketEstimate(ctx context.Context, ref TicketRef) (*ctbs.CancellationEstimate, error) {
	if ref.TicketID == "" {
		return nil, bussystem.NewValidationError("ticket_id is required")
	}

	body := map[string]interface{}{
		"ticket_id": ref.TicketID,
	}
	if ref.Security != "" {
		body["security"] = ref.Security
	}

	raw, err := e.transport.Post(ctx, bussystem.EndpointGetOrder, body)
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	estimate, err := decodeEstimate(raw, ref.TicketID)
	if err != nil {
		return nil, err
	}

	return estimate, nil
}

// OrderEstimate fetches estimates for every ticket of an order concurrently.
// A failed ticket is logged and skipped rather than failing the batch, so a
// single bad ticket id never hides the refund info for the rest.
func (e *Estimator) OrderEstimate(ctx context.Context, refs []TicketRef) []*ctbs.CancellationEstimate {
	fetchPool := pool.NewWithResults[*ctbs.CancellationEstimate]().WithMaxGoroutines(4)

	for _, ref := range refs {
		ref := ref

		fetchPool.Go(func() *ctbs.CancellationEstimate {
			estimate, err := e.TicketEstimate(ctx, ref)
			if err != nil {
				log.Warn().Err(err).Str("ticket_id", ref.TicketID).Msg("Skipping ticket in cancellation estimate batch")
				return nil
			}
			return estimate
		})
	}

	estimates := fetchPool.Wait()

	util.InPlaceFilter(&estimates, func(estimate *ctbs.CancellationEstimate) bool {
		return estimate != nil
	})

	return estimates
}

// RefundTotals is the aggregate refund picture across one order's tickets.
type RefundTotals struct {
	TotalRefund    float64 `groups:"basic" json:"total_refund"`
	TotalRetention float64 `groups:"basic" json:"total_retention"`
	Currency       string  `groups:"basic" json:"currency,omitempty"`
}

// CalculateTotalRefund sums refund_amount + baggage_refund into the headline
// figure and retention separately. Currency comes from the first estimate;
// orders are assumed single-currency and this is not re-checked.
func CalculateTotalRefund(estimates []*ctbs.CancellationEstimate) RefundTotals {
	var totals RefundTotals

	for _, estimate := range estimates {
		if estimate == nil {
			continue
		}

		totals.TotalRefund += estimate.RefundAmount + estimate.BaggageRefund
		totals.TotalRetention += estimate.RetentionAmount

		if totals.Currency == "" {
			totals.Currency = estimate.Currency
		}
	}

	return totals
}

func decodeEstimate(raw interface{}, ticketID string) (*ctbs.CancellationEstimate, error) {
	record, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "unexpected estimate response shape"}
	}

	if root, ok := record["root"].(map[string]interface{}); ok {
		record = root
	}

	// The ticket-level fields sometimes sit under the matching item entry.
	if item := findTicketRecord(record, ticketID); item != nil {
		record = item
	}

	estimate := &ctbs.CancellationEstimate{
		TicketID:            ticketID,
		RefundAmount:        numberField(record, "money_back_if_cancel", "money_back", "refund_amount"),
		RetentionAmount:     numberField(record, "provision_if_cancel", "provision", "retention_amount"),
		BaggageRefund:       numberField(record, "baggage_money_back", "baggage_refund"),
		CancelRate:          numberField(record, "cancel_rate"),
		Currency:            textField(record, "currency", "curency"),
		CanCancelIndividual: !flagSet(record["cancel_only_order"]),
	}

	return estimate, nil
}

func findTicketRecord(record map[string]interface{}, ticketID string) map[string]interface{} {
	items, ok := record["item"].([]interface{})
	if !ok {
		if single, ok := record["item"].(map[string]interface{}); ok {
			items = []interface{}{single}
		} else {
			return nil
		}
	}

	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if textField(entry, "ticket_id") == ticketID {
			return entry
		}
	}

	return nil
}

func numberField(record map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch value := record[key].(type) {
		case float64:
			return value
		case string:
			var parsed float64
			if _, err := fmt.Sscanf(value, "%g", &parsed); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func textField(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := record[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func flagSet(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}
