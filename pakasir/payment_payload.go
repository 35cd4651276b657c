package pakasir

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// PaymentPayload is a transaction as reported by the create or detail
// endpoints. Optional fields are nil when the API did not send them.
type PaymentPayload struct {
	Project       string        `json:"project"`
	OrderID       string        `json:"order_id"`
	Amount        int64         `json:"amount"`
	Fee           int64         `json:"fee"`
	Status        string        `json:"status"`
	TotalPayment  int64         `json:"total_payment"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentNumber *string       `json:"payment_number"`
	PaymentURL    *string       `json:"payment_url"`
	RedirectURL   *string       `json:"redirect_url"`
	ExpiredAt     *string       `json:"expired_at"`
	CompletedAt   *string       `json:"completed_at"`
}

func (p *PaymentPayload) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func (p *PaymentPayload) IsPending() bool {
	return p.Status == StatusPending
}

func (p *PaymentPayload) IsCanceled() bool {
	return p.Status == StatusCanceled
}

// rawPayment mirrors the "payment" and "transaction" objects. Every field is
// a pointer so that absent and null can be told apart from zero values.
type rawPayment struct {
	Project       *string  `json:"project"`
	OrderID       *string  `json:"order_id"`
	Amount        *flexInt `json:"amount"`
	Fee           *flexInt `json:"fee"`
	Status        *string  `json:"status"`
	TotalPayment  *flexInt `json:"total_payment"`
	PaymentMethod *string  `json:"payment_method"`
	PaymentNumber *string  `json:"payment_number"`
	PaymentURL    *string  `json:"payment_url"`
	RedirectURL   *string  `json:"redirect_url"`
	ExpiredAt     *string  `json:"expired_at"`
	CompletedAt   *string  `json:"completed_at"`
}

// newPaymentPayload applies the defaulting rules: status "pending", fee 0,
// total_payment equal to the requested amount, everything else zero or nil.
func newPaymentPayload(raw rawPayment, requestedAmount int64) *PaymentPayload {
	p := &PaymentPayload{
		Project:       stringOr(raw.Project, ""),
		OrderID:       stringOr(raw.OrderID, ""),
		Amount:        intOr(raw.Amount, 0),
		Fee:           intOr(raw.Fee, 0),
		Status:        stringOr(raw.Status, StatusPending),
		TotalPayment:  intOr(raw.TotalPayment, requestedAmount),
		PaymentMethod: PaymentMethod(stringOr(raw.PaymentMethod, "")),
		PaymentNumber: raw.PaymentNumber,
		PaymentURL:    raw.PaymentURL,
		RedirectURL:   raw.RedirectURL,
		ExpiredAt:     raw.ExpiredAt,
		CompletedAt:   raw.CompletedAt,
	}
	return p
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func intOr(n *flexInt, def int64) int64 {
	if n == nil {
		return def
	}
	return int64(*n)
}

// flexInt accepts a JSON number or a numeric JSON string. Fractions are
// truncated toward zero.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	v, err := parseInteger(s)
	if err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

func parseInteger(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("integer out of range: %q", s)
	}
	return int64(f), nil
}

// toInt64 converts a decoded JSON value, or a value supplied directly by a
// caller, to an integer.
func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer out of range: %d", n)
		}
		return int64(n), nil
	case float32:
		return parseInteger(strconv.FormatFloat(float64(n), 'f', -1, 32))
	case float64:
		return parseInteger(strconv.FormatFloat(n, 'f', -1, 64))
	case json.Number:
		return parseInteger(n.String())
	case string:
		return parseInteger(n)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
