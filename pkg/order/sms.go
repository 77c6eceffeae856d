package order

import (
	"context"

	"github.com/starlines/starlines/pkg/bussystem"
)

// SMSValidationResult reports where the provider's phone verification stands
// for a reservation. A code is first sent, then checked; ValidUntil comes
// back on the send step when the provider limits the code's lifetime.
type SMSValidationResult struct {
	Sent       bool   `groups:"basic" json:"sent"`
	Verified   bool   `groups:"basic" json:"verified"`
	ValidUntil string `groups:"detailed" json:"valid_until,omitempty"`
}

// RequestSMSCode asks the provider to text a verification code to the
// phone number on the reservation.
func (w *Workflow) RequestSMSCode(ctx context.Context, orderID, security, phone string) (*SMSValidationResult, error) {
	if orderID == "" || security == "" || phone == "" {
		return nil, bussystem.NewValidationError("order_id, security and phone are required")
	}

	raw, err := w.transport.Post(ctx, bussystem.EndpointSMSValidation, map[string]interface{}{
		"sid_guest": orderID,
		"security":  security,
		"phone":     phone,
		"send_sms":  1,
	})
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	return decodeSMSValidation(raw)
}

// ConfirmSMSCode checks the code the passenger received.
func (w *Workflow) ConfirmSMSCode(ctx context.Context, orderID, security, phone, code string) (*SMSValidationResult, error) {
	if orderID == "" || security == "" || phone == "" || code == "" {
		return nil, bussystem.NewValidationError("order_id, security, phone and code are required")
	}

	raw, err := w.transport.Post(ctx, bussystem.EndpointSMSValidation, map[string]interface{}{
		"sid_guest":  orderID,
		"security":   security,
		"phone":      phone,
		"check_sms":  1,
		"validation": code,
	})
	if err != nil {
		return nil, err
	}
	if providerErr := bussystem.CheckSentinel(raw); providerErr != nil {
		return nil, providerErr
	}

	return decodeSMSValidation(raw)
}

func decodeSMSValidation(raw interface{}) (*SMSValidationResult, error) {
	record := rootRecord(raw)
	if record == nil {
		return nil, &bussystem.Error{Code: bussystem.ErrorCodeParse, Message: "unexpected sms_validation response shape"}
	}

	result := &SMSValidationResult{
		ValidUntil: stringValue(record["valid_until"]),
	}

	switch stringValue(record["send_sms"]) {
	case "1", "true":
		result.Sent = true
	}
	switch stringValue(record["check_sms"]) {
	case "1", "true":
		result.Verified = true
	}

	return result, nil
}
