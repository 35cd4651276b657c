package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const basePath = "/pakasir/v0"

func NewRouter(s ApiServicer) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	v0 := router.PathPrefix(basePath).Subrouter()
	v0.Handle("/status", http.HandlerFunc(s.GetStatus)).
		Methods(http.MethodGet).
		Name("GetStatus")
	v0.Handle("/payments", http.HandlerFunc(s.PostPayments)).
		Methods(http.MethodPost).
		Name("PostPayments")
	v0.Handle("/payments/{order_id}", http.HandlerFunc(s.GetPayment)).
		Methods(http.MethodGet).
		Name("GetPayment")
	v0.Handle("/webhook", http.HandlerFunc(s.Webhook)).
		Methods(http.MethodPost).
		Name("Webhook")

	router.Handle("/metrics", promhttp.Handler())

	return router
}
