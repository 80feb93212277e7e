package metrics

import "github.com/prometheus/client_golang/prometheus"

// Analysis metrics. Registered explicitly from main (no init()) so tests
// can exercise the services without touching the default registry.
var (
	// AnalyzeTotal counts analyze calls by outcome: created | duplicate.
	AnalyzeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stringdex",
			Name:      "analyze_total",
			Help:      "String analyze operations by outcome",
		},
		[]string{"outcome"},
	)

	// TranslateTotal counts natural-language translations by outcome:
	// ok | unrecognized.
	TranslateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stringdex",
			Name:      "nl_translate_total",
			Help:      "Natural-language query translations by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterAnalysisMetrics registers the analysis metrics with the default
// prometheus registry.
func RegisterAnalysisMetrics() {
	prometheus.MustRegister(AnalyzeTotal)
	prometheus.MustRegister(TranslateTotal)
}
