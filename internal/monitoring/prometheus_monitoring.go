package prometheus_monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// https://prometheus.io/docs/guides/go-application/

const (
	namespace = "pakasir_gateway"
)

var (
	gatewayStatusMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "status",
		Help:      "Health status indicator for the Pakasir gateway",
	})
	paymentsCreatedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_created",
		Help:      "The total number of payments successfully created on Pakasir",
	})
	createPaymentFailedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "create_payment_failed",
		Help:      "The total number of times creating a payment on Pakasir failed",
	})
	webhooksReceivedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhooks_received",
		Help:      "The total number of webhook notifications received",
	})
	webhooksFailedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhooks_failed",
		Help:      "The total number of webhook notifications that could not be parsed or verified",
	})
	webhooksVerifiedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhooks_verified",
		Help:      "The total number of webhook notifications confirmed against the Pakasir API",
	})
	webhookProjectMismatchMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_project_mismatch",
		Help:      "The total number of webhook notifications naming another project",
	})
	apiRequestsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Requests sent to the Pakasir API, by status code and method",
	}, []string{"code", "method"})
	apiRequestDurationMetric = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Latency of requests sent to the Pakasir API",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method"})
)

// InstrumentClient returns a copy of client whose transport records request
// counts and latencies.
func InstrumentClient(client *http.Client) *http.Client {
	c := *client
	transport := c.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	c.Transport = promhttp.InstrumentRoundTripperCounter(apiRequestsMetric,
		promhttp.InstrumentRoundTripperDuration(apiRequestDurationMetric, transport),
	)
	return &c
}

func SetGatewayStatus(status float64) {
	gatewayStatusMetric.Set(status)
}

func TickPaymentCreated() {
	paymentsCreatedMetric.Inc()
}

func TickCreatePaymentFailed() {
	createPaymentFailedMetric.Inc()
}

func TickWebhookReceived() {
	webhooksReceivedMetric.Inc()
}

func TickWebhookFailed() {
	webhooksFailedMetric.Inc()
}

func TickWebhookVerified() {
	webhooksVerifiedMetric.Inc()
}

func TickWebhookProjectMismatch() {
	webhookProjectMismatchMetric.Inc()
}
