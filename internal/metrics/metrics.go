package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_total",
			Help: "Total successful transactions",
		},
		[]string{"type"}, // INCOME|EXPENSE
	)
	TransactionsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_failed_total",
			Help: "Total failed transaction creations",
		},
	)

	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_extractions_total",
			Help: "AI extraction attempts by kind and outcome",
		},
		[]string{"kind", "outcome"}, // receipt|prompt, ok|error|parse_error|incomplete
	)

	AdmissionDenied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admission_denied_total",
			Help: "Requests denied by admission control",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(TransactionsFailed)
	prometheus.MustRegister(ExtractionsTotal)
	prometheus.MustRegister(AdmissionDenied)
}
