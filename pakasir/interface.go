package pakasir

import (
	"context"
)

type Service interface {
	CreatePayment(ctx context.Context, createPaymentRequest CreatePaymentRequest) (*PaymentPayload, error)
	DetailPayment(ctx context.Context, orderID string, amount int64) (*PaymentPayload, error)
	GetPaymentURL(orderID string, amount int64, redirect string, qrisOnly bool) string
	GetPaypalURL(orderID string, amount int64) string
	Slug() string
}

// Verifier is what a WebhookHandler needs to confirm a notification against
// the API. Service satisfies it.
type Verifier interface {
	Slug() string
	DetailPayment(ctx context.Context, orderID string, amount int64) (*PaymentPayload, error)
}
