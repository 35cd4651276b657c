package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ItsAzni/pakasir-sdk-go/pakasir"
)

const (
	mockedSlug    = "mocked-shop"
	mockedOrderID = "ORDER-01D78XYFJ1PRM1WPBCBT3VHMNV"
)

type MockedApiService struct{}

// NewMockedApiService creates an api service that never calls Pakasir
func NewMockedApiService() ApiServicer {
	return &MockedApiService{}
}

// Health check for the gateway
func (s *MockedApiService) GetStatus(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, Status{Status: "UP"})
}

// Creates a payment and returns the link for the customer
func (s *MockedApiService) PostPayments(w http.ResponseWriter, r *http.Request) {
	payment := mockedPayment(mockedOrderID, pakasir.StatusPending)
	RespondJSON(w, http.StatusCreated, PaymentCreated{
		OrderID:    mockedOrderID,
		PaymentURL: *payment.PaymentURL,
		Payment:    payment,
	})
}

// Gets the current state of a payment
func (s *MockedApiService) GetPayment(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, mockedPayment(mux.Vars(r)["order_id"], pakasir.StatusCompleted))
}

// receives Pakasir webhook notifications
func (s *MockedApiService) Webhook(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, mockedPayment(mockedOrderID, pakasir.StatusCompleted))
}

func mockedPayment(orderID string, status string) *pakasir.PaymentPayload {
	paymentURL := "https://app.pakasir.com/pay/" + mockedSlug + "/20000?order_id=" + orderID
	paymentNumber := "00020101021226610016ID.CO.QRIS.WWW"
	return &pakasir.PaymentPayload{
		Project:       mockedSlug,
		OrderID:       orderID,
		Amount:        20000,
		Fee:           140,
		Status:        status,
		TotalPayment:  20140,
		PaymentMethod: pakasir.PaymentMethodQRIS,
		PaymentNumber: &paymentNumber,
		PaymentURL:    &paymentURL,
	}
}
