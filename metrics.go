package main

import (
	"sync"

	"aamva-parser/document/aamva"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	SOURCE_CLI  = "cli"
	SOURCE_HTTP = "http"
)

var (
	registerOnce sync.Once

	parsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aamva_parser",
			Name:      "parses_total",
			Help:      "Total parsed licence payloads.",
		},
		[]string{"source"},
	)
	invalidFieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aamva_parser",
			Name:      "invalid_fields_total",
			Help:      "Fields that failed normalization, by field name.",
		},
		[]string{"field"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(parsesTotal, invalidFieldsTotal)
	})
}

// RecordParse counts one parsed payload and the sentinel fields it produced
func RecordParse(source string, record aamva.Record) {
	parsesTotal.WithLabelValues(source).Inc()
	for _, field := range record.InvalidFields() {
		invalidFieldsTotal.WithLabelValues(field).Inc()
	}
}
