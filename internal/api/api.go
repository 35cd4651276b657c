package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	prometheus_monitoring "github.com/ItsAzni/pakasir-sdk-go/internal/monitoring"
	"github.com/ItsAzni/pakasir-sdk-go/internal/orderid"
	"github.com/ItsAzni/pakasir-sdk-go/pakasir"
)

const (
	orderIDPrefix = "ORDER"
	maxBodyBytes  = 1 << 20
)

type ApiServicer interface {
	GetStatus(w http.ResponseWriter, r *http.Request)
	PostPayments(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type Status struct {
	Status string `json:"status"`
}

type PaymentRequest struct {
	Method string `json:"method"`
	// generated when empty
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Redirect string `json:"redirect"`
	QRISOnly bool   `json:"qris_only"`
}

type PaymentCreated struct {
	OrderID string `json:"order_id"`
	// where to send the customer
	PaymentURL string `json:"payment_url"`
	// nil for PayPal, which is a plain redirect
	Payment *pakasir.PaymentPayload `json:"payment,omitempty"`
}

type ApiService struct {
	pakasirService pakasir.Service
	webhookHandler *pakasir.WebhookHandler
	orderIDs       *orderid.Generator
	log            *zap.Logger
}

// NewApiService creates an api service
func NewApiService(
	pakasirService pakasir.Service,
	webhookHandler *pakasir.WebhookHandler,
	orderIDs *orderid.Generator,
	log *zap.Logger,
) ApiServicer {
	return &ApiService{
		pakasirService: pakasirService,
		webhookHandler: webhookHandler,
		orderIDs:       orderIDs,
		log:            log,
	}
}

// Health check for the gateway
func (s *ApiService) GetStatus(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, Status{Status: "UP"})
}

// Creates a payment and returns the link for the customer
func (s *ApiService) PostPayments(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return
	}
	if !pakasir.IsValidPaymentMethod(req.Method) {
		RespondError(w, http.StatusBadRequest, "INVALID_METHOD", "unsupported payment method: "+req.Method)
		return
	}
	if req.Amount <= 0 {
		RespondError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be greater than zero")
		return
	}

	if req.OrderID == "" {
		orderID, err := s.orderIDs.New(orderIDPrefix)
		if err != nil {
			s.log.Error("failed to generate order id", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to generate order id")
			return
		}
		req.OrderID = orderID
	}
	log := s.log.With(zap.String("order_id", req.OrderID), zap.String("method", req.Method))

	if pakasir.PaymentMethod(req.Method) == pakasir.PaymentMethodPaypal {
		log.Info("paypal payment link created")
		prometheus_monitoring.TickPaymentCreated()
		RespondJSON(w, http.StatusCreated, PaymentCreated{
			OrderID:    req.OrderID,
			PaymentURL: s.pakasirService.GetPaypalURL(req.OrderID, req.Amount),
		})
		return
	}

	payment, err := s.pakasirService.CreatePayment(r.Context(), pakasir.CreatePaymentRequest{
		Method:   pakasir.PaymentMethod(req.Method),
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Redirect: req.Redirect,
	})
	if err != nil {
		log.Error("failed to create payment", zap.Error(err))
		prometheus_monitoring.TickCreatePaymentFailed()
		respondPakasirError(w, err)
		return
	}

	log.Info("payment created", zap.Int64("total_payment", payment.TotalPayment))
	prometheus_monitoring.TickPaymentCreated()
	RespondJSON(w, http.StatusCreated, PaymentCreated{
		OrderID:    req.OrderID,
		PaymentURL: s.pakasirService.GetPaymentURL(req.OrderID, req.Amount, req.Redirect, req.QRISOnly),
		Payment:    payment,
	})
}

// Gets the current state of a payment from Pakasir
func (s *ApiService) GetPayment(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		RespondError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount query parameter must be a positive integer")
		return
	}

	payment, err := s.pakasirService.DetailPayment(r.Context(), orderID, amount)
	if err != nil {
		s.log.Error("failed to get payment detail", zap.String("order_id", orderID), zap.Error(err))
		respondPakasirError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, payment)
}

// receives Pakasir webhook notifications
func (s *ApiService) Webhook(w http.ResponseWriter, r *http.Request) {
	prometheus_monitoring.TickWebhookReceived()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.log.Error("failed to read webhook body", zap.Error(err))
		prometheus_monitoring.TickWebhookFailed()
		RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to read body")
		return
	}

	// Pakasir does not sign webhooks, so the payload is only trusted after
	// being fetched back from the API
	payment, err := s.webhookHandler.HandleAndVerify(r.Context(), body)
	if err != nil {
		if errors.Is(err, pakasir.ErrProjectMismatch) {
			prometheus_monitoring.TickWebhookProjectMismatch()
		}
		s.log.Warn("failed to verify webhook", zap.Error(err))
		prometheus_monitoring.TickWebhookFailed()
		respondPakasirError(w, err)
		return
	}

	s.log.Info("webhook verified",
		zap.String("order_id", payment.OrderID),
		zap.String("status", payment.Status),
		zap.Int64("amount", payment.Amount),
	)
	prometheus_monitoring.TickWebhookVerified()
	RespondJSON(w, http.StatusOK, payment)
}

func respondPakasirError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pakasir.ErrParse):
		RespondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
	case errors.Is(err, pakasir.ErrValidation):
		RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, pakasir.ErrTransport), errors.Is(err, pakasir.ErrProtocol):
		RespondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
