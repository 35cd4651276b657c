package pakasir_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsAzni/pakasir-sdk-go/pakasir"
)

const completedWebhook = `{
	"amount": 22000,
	"order_id": "240910HDE7C9",
	"project": "shop",
	"status": "completed",
	"payment_method": "qris",
	"completed_at": "2024-09-10T08:07:02.819+07:00"
}`

type fakeVerifier struct {
	slug    string
	calls   int
	payload *pakasir.PaymentPayload
	err     error
}

func (f *fakeVerifier) Slug() string {
	return f.slug
}

func (f *fakeVerifier) DetailPayment(_ context.Context, orderID string, amount int64) (*pakasir.PaymentPayload, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func TestHandle(t *testing.T) {
	handler := pakasir.NewWebhookHandler()

	webhook, err := handler.Handle([]byte(completedWebhook))
	require.NoError(t, err)

	assert.Equal(t, &pakasir.WebhookPayload{
		Amount:        22000,
		OrderID:       "240910HDE7C9",
		Project:       "shop",
		Status:        "completed",
		PaymentMethod: pakasir.PaymentMethodQRIS,
		CompletedAt:   "2024-09-10T08:07:02.819+07:00",
	}, webhook)
	assert.True(t, webhook.IsCompleted())

	// marshalling gives back the same document
	b, err := json.Marshal(webhook)
	require.NoError(t, err)
	assert.JSONEq(t, completedWebhook, string(b))
}

func TestHandleMapRoundTrip(t *testing.T) {
	handler := pakasir.NewWebhookHandler()

	webhook, err := handler.HandleMap(map[string]interface{}{
		"amount":         15000,
		"order_id":       "ORD-7",
		"project":        "shop",
		"status":         "pending",
		"payment_method": "permata_va",
		"completed_at":   "",
		"extra":          "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15000), webhook.Amount)
	assert.Equal(t, "ORD-7", webhook.OrderID)
	assert.Equal(t, "shop", webhook.Project)
	assert.Equal(t, "pending", webhook.Status)
	assert.Equal(t, pakasir.PaymentMethodPermataVA, webhook.PaymentMethod)
	assert.Equal(t, "", webhook.CompletedAt)
	assert.False(t, webhook.IsCompleted())
}

func TestHandleInvalidJSON(t *testing.T) {
	handler := pakasir.NewWebhookHandler()

	for _, body := range []string{`{"order_id":`, ``, `not json`, `[1,2]`, `null`, `"text"`, `{} {}`} {
		t.Run(body, func(t *testing.T) {
			webhook, err := handler.Handle([]byte(body))
			assert.Nil(t, webhook)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pakasir.ErrParse), err.Error())
			assert.False(t, errors.Is(err, pakasir.ErrValidation))
		})
	}
}

func TestHandleMissingFields(t *testing.T) {
	handler := pakasir.NewWebhookHandler()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing completed_at", body: `{"amount":1,"order_id":"a","project":"shop","status":"completed","payment_method":"qris"}`},
		{name: "missing amount", body: `{"order_id":"a","project":"shop","status":"completed","payment_method":"qris","completed_at":"x"}`},
		{name: "null project", body: `{"amount":1,"order_id":"a","project":null,"status":"completed","payment_method":"qris","completed_at":"x"}`},
		{name: "empty object", body: `{}`},
		{name: "amount not numeric", body: `{"amount":"lots","order_id":"a","project":"shop","status":"completed","payment_method":"qris","completed_at":"x"}`},
		{name: "order id not a string", body: `{"amount":1,"order_id":12,"project":"shop","status":"completed","payment_method":"qris","completed_at":"x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			webhook, err := handler.Handle([]byte(tc.body))
			assert.Nil(t, webhook)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pakasir.ErrValidation), err.Error())
		})
	}
}

func TestHandleMissingFieldsNamesThem(t *testing.T) {
	_, err := pakasir.NewWebhookHandler().Handle([]byte(`{"amount":1,"order_id":"a","project":"shop"}`))
	require.Error(t, err)
	assert.Equal(t, "pakasir: invalid webhook payload, missing status, payment_method, completed_at", err.Error())
}

func TestHandleAndVerifyRequiresVerifier(t *testing.T) {
	handler := pakasir.NewWebhookHandler()
	assert.False(t, handler.CanVerify())

	_, err := handler.HandleAndVerify(context.Background(), []byte(completedWebhook))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pakasir.ErrConfiguration))

	_, err = handler.HandleAndVerifyMap(context.Background(), map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pakasir.ErrConfiguration))
}

func TestHandleAndVerifyProjectMismatch(t *testing.T) {
	verifier := &fakeVerifier{slug: "other-shop"}
	handler := pakasir.NewVerifyingWebhookHandler(verifier)
	assert.True(t, handler.CanVerify())

	payment, err := handler.HandleAndVerify(context.Background(), []byte(completedWebhook))
	assert.Nil(t, payment)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pakasir.ErrValidation))
	assert.True(t, errors.Is(err, pakasir.ErrProjectMismatch))
	assert.Equal(t, 0, verifier.calls)
}

func TestHandleAndVerifyParseFailureSkipsAPI(t *testing.T) {
	verifier := &fakeVerifier{slug: "shop"}
	handler := pakasir.NewVerifyingWebhookHandler(verifier)

	_, err := handler.HandleAndVerify(context.Background(), []byte(`{"project":"shop"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pakasir.ErrValidation))
	assert.Equal(t, 0, verifier.calls)
}

func TestHandleAndVerifyPropagatesVerifierError(t *testing.T) {
	verifier := &fakeVerifier{slug: "shop", err: errors.New("boom")}
	handler := pakasir.NewVerifyingWebhookHandler(verifier)

	_, err := handler.HandleAndVerify(context.Background(), []byte(completedWebhook))
	require.Error(t, err)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, verifier.calls)
}

func TestHandleAndVerify(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/transactiondetail", r.URL.Path)
		assert.Equal(t, "240910HDE7C9", q.Get("order_id"))
		assert.Equal(t, "22000", q.Get("amount"))

		_, _ = io.WriteString(w, `{
			"transaction": {
				"project": "shop",
				"order_id": "240910HDE7C9",
				"amount": 22000,
				"status": "completed",
				"payment_method": "qris",
				"completed_at": "2024-09-10T08:07:02.819+07:00"
			}
		}`)
	})
	handler := pakasir.NewVerifyingWebhookHandler(service)

	payment, err := handler.HandleAndVerify(context.Background(), []byte(completedWebhook))
	require.NoError(t, err)
	assert.True(t, payment.IsCompleted())
	assert.Equal(t, "240910HDE7C9", payment.OrderID)
	assert.Equal(t, int64(22000), payment.TotalPayment)

	payment, err = handler.HandleAndVerifyMap(context.Background(), map[string]interface{}{
		"amount":         json.Number("22000"),
		"order_id":       "240910HDE7C9",
		"project":        "shop",
		"status":         "completed",
		"payment_method": "qris",
		"completed_at":   "2024-09-10T08:07:02.819+07:00",
	})
	require.NoError(t, err)
	assert.True(t, payment.IsCompleted())
}
