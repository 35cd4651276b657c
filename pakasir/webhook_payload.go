package pakasir

import (
	"fmt"
	"strings"
)

// WebhookPayload is the body Pakasir posts when a payment completes.
type WebhookPayload struct {
	Amount        int64         `json:"amount"`
	OrderID       string        `json:"order_id"`
	Project       string        `json:"project"`
	Status        string        `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CompletedAt   string        `json:"completed_at"`
}

func (p *WebhookPayload) IsCompleted() bool {
	return p.Status == StatusCompleted
}

var webhookRequiredKeys = []string{
	"order_id",
	"amount",
	"project",
	"status",
	"payment_method",
	"completed_at",
}

// newWebhookPayload builds a WebhookPayload from a decoded body. All six
// keys must be present and non-null; nothing is defaulted.
func newWebhookPayload(data map[string]interface{}) (*WebhookPayload, error) {
	var missing []string
	for _, key := range webhookRequiredKeys {
		if v, ok := data[key]; !ok || v == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, validationError(fmt.Sprintf("invalid webhook payload, missing %s", strings.Join(missing, ", ")), nil)
	}

	amount, err := toInt64(data["amount"])
	if err != nil {
		return nil, validationError("invalid webhook payload, bad amount", err)
	}

	fields := make(map[string]string, len(webhookRequiredKeys)-1)
	for _, key := range webhookRequiredKeys {
		if key == "amount" {
			continue
		}
		s, ok := data[key].(string)
		if !ok {
			return nil, validationError(fmt.Sprintf("invalid webhook payload, %s must be a string", key), nil)
		}
		fields[key] = s
	}

	return &WebhookPayload{
		Amount:        amount,
		OrderID:       fields["order_id"],
		Project:       fields["project"],
		Status:        fields["status"],
		PaymentMethod: PaymentMethod(fields["payment_method"]),
		CompletedAt:   fields["completed_at"],
	}, nil
}
