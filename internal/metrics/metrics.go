package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiter_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	WorkflowDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "recruiter_workflow_duration_seconds",
			Help:       "Duration of each recruitment workflow in seconds.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"workflow"},
	)
	WorkflowCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiter_workflow_total",
			Help: "Total number of workflow invocations by outcome.",
		},
		[]string{"workflow", "outcome"},
	)
	DecisionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiter_decisions_total",
			Help: "Total number of selection decisions.",
		},
		[]string{"decision"},
	)
	TokenExchangesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiter_token_exchanges_total",
			Help: "Total number of meeting provider credential exchanges.",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(WorkflowDuration)
		prometheus.MustRegister(WorkflowCounter)
		prometheus.MustRegister(DecisionsCounter)
		prometheus.MustRegister(TokenExchangesCounter)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
