package pakasir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// WebhookHandler turns Pakasir notifications into WebhookPayloads. Pakasir
// does not sign notifications, so the only way to trust one is to fetch the
// transaction again; a handler built with NewVerifyingWebhookHandler can do
// that.
type WebhookHandler struct {
	verifier Verifier
}

// NewWebhookHandler returns a handler that can parse but not verify.
func NewWebhookHandler() *WebhookHandler {
	return &WebhookHandler{}
}

func NewVerifyingWebhookHandler(verifier Verifier) *WebhookHandler {
	return &WebhookHandler{verifier: verifier}
}

// CanVerify reports whether HandleAndVerify is usable.
func (h *WebhookHandler) CanVerify() bool {
	return h.verifier != nil
}

// Handle parses a JSON request body.
func (h *WebhookHandler) Handle(body []byte) (*WebhookPayload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, parseError("invalid JSON payload", err)
	}
	if dec.More() {
		return nil, parseError("invalid JSON payload", fmt.Errorf("trailing data after object"))
	}
	if data == nil {
		return nil, parseError("invalid JSON payload", fmt.Errorf("body is null"))
	}

	return h.HandleMap(data)
}

// HandleMap accepts a body that was already decoded by the caller.
func (h *WebhookHandler) HandleMap(data map[string]interface{}) (*WebhookPayload, error) {
	return newWebhookPayload(data)
}

// HandleAndVerify parses body and returns the transaction as currently
// reported by the API.
func (h *WebhookHandler) HandleAndVerify(ctx context.Context, body []byte) (*PaymentPayload, error) {
	if h.verifier == nil {
		return nil, configurationError("a Pakasir client is required for verification")
	}

	webhook, err := h.Handle(body)
	if err != nil {
		return nil, err
	}
	return h.verify(ctx, webhook)
}

func (h *WebhookHandler) HandleAndVerifyMap(ctx context.Context, data map[string]interface{}) (*PaymentPayload, error) {
	if h.verifier == nil {
		return nil, configurationError("a Pakasir client is required for verification")
	}

	webhook, err := h.HandleMap(data)
	if err != nil {
		return nil, err
	}
	return h.verify(ctx, webhook)
}

func (h *WebhookHandler) verify(ctx context.Context, webhook *WebhookPayload) (*PaymentPayload, error) {
	// a notification for another project must never reach the API
	if webhook.Project != h.verifier.Slug() {
		return nil, validationError(
			fmt.Sprintf("webhook project %q does not match %q", webhook.Project, h.verifier.Slug()),
			ErrProjectMismatch,
		)
	}

	return h.verifier.DetailPayment(ctx, webhook.OrderID, webhook.Amount)
}
