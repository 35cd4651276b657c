package pakasir

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ItsAzni/pakasir-sdk-go/internal/logging"
)

const (
	baseURL        = "https://app.pakasir.com"
	requestTimeout = 30 * time.Second
	// how much of a failed response body is kept in a StatusError
	maxErrorBodyBytes = 512
)

type ServiceImpl struct {
	slug       string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// creates a new ServiceImpl for one project
func New(slug string, apiKey string, opts ...Option) (*ServiceImpl, error) {
	if slug == "" || apiKey == "" {
		return nil, configurationError("slug and API key are required")
	}

	s := &ServiceImpl{
		slug:    slug,
		apiKey:  apiKey,
		baseURL: baseURL,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: requestTimeout}
	}
	s.log = s.log.With(zap.String("project", slug))

	s.log.Debug("pakasir client created",
		zap.String("base_url", s.baseURL),
		zap.String("api_key", logging.MaskAPIKey(apiKey)),
	)
	return s, nil
}

type CreatePaymentRequest struct {
	Method  PaymentMethod
	OrderID string
	Amount  int64
	// Redirect is where the customer lands after paying. Empty means none.
	Redirect string
}

type createPaymentBody struct {
	Project  string `json:"project"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	APIKey   string `json:"api_key"`
	Redirect string `json:"redirect,omitempty"`
}

func (s *ServiceImpl) Slug() string {
	return s.slug
}

func (s *ServiceImpl) CreatePayment(ctx context.Context, createPaymentRequest CreatePaymentRequest) (*PaymentPayload, error) {
	body, err := json.Marshal(createPaymentBody{
		Project:  s.slug,
		OrderID:  createPaymentRequest.OrderID,
		Amount:   createPaymentRequest.Amount,
		APIKey:   s.apiKey,
		Redirect: createPaymentRequest.Redirect,
	})
	if err != nil {
		return nil, protocolError("failed to encode create payment request", err)
	}

	// "/api/transactioncreate/<method>"
	u := s.baseURL + "/api/transactioncreate/" + url.PathEscape(string(createPaymentRequest.Method))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, transportError("failed to create payment", err)
	}

	respBody, err := s.do(req, "failed to create payment", createPaymentRequest.OrderID)
	if err != nil {
		return nil, err
	}

	raw, err := decodeEnvelope(respBody, "payment")
	if err != nil {
		return nil, err
	}

	paymentURL := s.GetPaymentURL(createPaymentRequest.OrderID, createPaymentRequest.Amount, createPaymentRequest.Redirect, false)
	raw.PaymentURL = &paymentURL
	// the redirect echoes what we sent, never what came back
	raw.RedirectURL = nil
	if createPaymentRequest.Redirect != "" {
		redirect := createPaymentRequest.Redirect
		raw.RedirectURL = &redirect
	}

	return newPaymentPayload(raw, createPaymentRequest.Amount), nil
}

func (s *ServiceImpl) DetailPayment(ctx context.Context, orderID string, amount int64) (*PaymentPayload, error) {
	query := url.Values{}
	query.Set("project", s.slug)
	query.Set("order_id", orderID)
	query.Set("amount", fmt.Sprintf("%d", amount))
	query.Set("api_key", s.apiKey)

	// "/api/transactiondetail?..."
	u := s.baseURL + "/api/transactiondetail?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transportError("failed to get payment detail", s.redact(err))
	}

	respBody, err := s.do(req, "failed to get payment detail", orderID)
	if err != nil {
		return nil, err
	}

	raw, err := decodeEnvelope(respBody, "transaction")
	if err != nil {
		return nil, err
	}

	paymentURL := s.GetPaymentURL(orderID, amount, "", false)
	raw.PaymentURL = &paymentURL

	return newPaymentPayload(raw, amount), nil
}

// GetPaymentURL builds the checkout page link shown to customers.
// Parameters always appear in the order order_id, redirect, qris_only.
func (s *ServiceImpl) GetPaymentURL(orderID string, amount int64, redirect string, qrisOnly bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/pay/%s/%d?order_id=%s", s.baseURL, s.slug, amount, url.QueryEscape(orderID))
	if redirect != "" {
		b.WriteString("&redirect=")
		b.WriteString(url.QueryEscape(redirect))
	}
	if qrisOnly {
		b.WriteString("&qris_only=1")
	}
	return b.String()
}

// GetPaypalURL builds the PayPal checkout link. Pakasir rejects PayPal
// amounts below Rp10,000; that is left to the caller.
func (s *ServiceImpl) GetPaypalURL(orderID string, amount int64) string {
	return fmt.Sprintf("%s/paypal/%s/%d?order_id=%s", s.baseURL, s.slug, amount, url.QueryEscape(orderID))
}

func (s *ServiceImpl) do(req *http.Request, failure string, orderID string) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := s.log.With(
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("order_id", orderID),
	)

	start := time.Now()
	log.Debug("pakasir request sent")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Warn("pakasir request failed", zap.Error(s.redact(err)))
		return nil, transportError(failure, s.redact(err))
	}
	defer resp.Body.Close()

	log.Debug("pakasir response received",
		zap.Int("status", resp.StatusCode),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, transportError(failure, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(failure, err)
	}
	return body, nil
}

// redact masks the api_key query parameter that net/http echoes into
// *url.Error messages.
func (s *ServiceImpl) redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return err
	}
	q := u.Query()
	if q.Get("api_key") == "" {
		return err
	}
	q.Set("api_key", logging.MaskAPIKey(q.Get("api_key")))
	u.RawQuery = q.Encode()
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}

// decodeEnvelope extracts the object stored under key, e.g. {"payment": {...}}.
func decodeEnvelope(body []byte, key string) (rawPayment, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return rawPayment{}, protocolError("invalid response from Pakasir API", err)
	}

	data, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return rawPayment{}, protocolError(fmt.Sprintf("invalid response from Pakasir API, missing %q", key), nil)
	}

	var raw rawPayment
	if err := json.Unmarshal(data, &raw); err != nil {
		return rawPayment{}, protocolError(fmt.Sprintf("invalid response from Pakasir API, malformed %q", key), err)
	}
	return raw, nil
}
