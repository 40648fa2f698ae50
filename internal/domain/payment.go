package domain

import (
	"errors"
	"strings"
)

type PaymentMethod struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	RequiresTransactionID bool   `json:"requiresTransactionId"`
	// AdminOnly methods show up in the admin edit form but are never
	// offered in the customer-facing payment flow.
	AdminOnly bool `json:"adminOnly,omitempty"`
}

const PaymentMethodNotPaid = "not_paid"

// PaymentMethods is the method table. Customers only ever see cash; the rest
// exist for the admin booking-details form.
var PaymentMethods = []PaymentMethod{
	{ID: "cash", Name: "Cash Payment", Description: "Pay in cash at our office"},
	{ID: PaymentMethodNotPaid, Name: "Pay Later", Description: "Pay after service completion"},
	{ID: "online", Name: "Online Payment", Description: "Paid through the online portal", AdminOnly: true},
	{ID: "upi", Name: "UPI Payment", Description: "Paid via UPI", RequiresTransactionID: true, AdminOnly: true},
	{ID: "bank_transfer", Name: "Bank Transfer", Description: "Direct bank transfer", RequiresTransactionID: true, AdminOnly: true},
}

func PaymentMethodByID(id string) (PaymentMethod, bool) {
	for _, m := range PaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

func CustomerPaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, 0, len(PaymentMethods))
	for _, m := range PaymentMethods {
		if !m.AdminOnly {
			out = append(out, m)
		}
	}
	return out
}

// PaymentStatusFor maps a selected method onto the resulting payment status:
// not_paid stays pending, every accepted method marks the booking paid.
func PaymentStatusFor(methodID string) PaymentStatus {
	if methodID == PaymentMethodNotPaid {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}

var (
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrTransactionIDRequired = errors.New("transaction id is required for this payment method")
)

// ValidatePaymentUpdate gates a payment update before it leaves the client:
// methods flagged as requiring a transaction id reject empty or
// whitespace-only ids.
func ValidatePaymentUpdate(methodID, transactionID string) error {
	m, ok := PaymentMethodByID(methodID)
	if !ok {
		return ErrUnknownPaymentMethod
	}
	if m.RequiresTransactionID && strings.TrimSpace(transactionID) == "" {
		return ErrTransactionIDRequired
	}
	return nil
}
