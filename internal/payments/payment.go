package payments

import "time"

// PaymentCustomer identifies the customer a payment belongs to
type PaymentCustomer struct {
	ID    string
	Email string
	Name  string
}

// Payment represents one processed payment as reported by the billing
// provider. Amount is in the smallest currency unit (cents).
type Payment struct {
	ID          string
	Amount      int64
	Currency    string
	Customer    PaymentCustomer
	Status      string
	Paid        bool
	Description string
	CreatedAt   time.Time
}
