package api

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/service"
)

// Metrics holds the Prometheus collectors of one server. Each server owns a
// registry so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	useCases        *prometheus.CounterVec
	ruleRejections  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timelog_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "timelog_http_request_duration_ms",
				Help:    "Latency of HTTP requests in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"method", "route"},
		),
		useCases: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timelog_use_cases_total",
				Help: "Rule-set operations by outcome",
			},
			[]string{"use_case", "outcome"},
		),
		ruleRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timelog_rule_rejections_total",
				Help: "Operations rejected by a business rule, by kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(float64(elapsed.Microseconds()) / 1000)
}

// ObserveUseCase lets Metrics serve as a service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	outcome := "ok"
	if event.Err != nil {
		outcome = "error"
		if re, ok := domain.AsRuleError(event.Err); ok {
			outcome = "rejected"
			m.ruleRejections.WithLabelValues(string(re.Kind)).Inc()
		}
	}
	m.useCases.WithLabelValues(event.Name, outcome).Inc()
}

var _ service.UseCaseObserver = (*Metrics)(nil)
