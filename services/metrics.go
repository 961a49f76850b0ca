package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crimelens_uploads_total",
		Help: "Total number of dataset uploads processed.",
	})
	RecordsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crimelens_records_loaded_total",
		Help: "Total number of incident records retained after normalization.",
	})
	AnalysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crimelens_analysis_requests_total",
		Help: "Analytical requests served, by endpoint and outcome.",
	}, []string{"endpoint", "status"})
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crimelens_analysis_duration_seconds",
		Help:    "Duration of analytical computations.",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	}, []string{"endpoint"})
	AssistantStreams = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crimelens_assistant_streams_total",
		Help: "Total number of safety-assistant streams started.",
	})
)
