// Package metrics registriert die Prometheus-Zähler der Pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PipelineRuns zählt Pipeline-Durchläufe je Ablauf ("search", "check", "ask") und Ergebnis.
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of pipeline runs by flow and outcome.",
		},
		[]string{"flow", "outcome"},
	)

	// Verdicts zählt die vergebenen Labels.
	Verdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verdicts_total",
			Help: "Total number of verdicts by label.",
		},
		[]string{"label"},
	)

	// FallbackVerdicts zählt Bewertungen, bei denen das Modell kein gültiges JSON lieferte.
	FallbackVerdicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "verdict_fallbacks_total",
			Help: "Total number of verdicts built from the fallback body because the model output was not valid JSON.",
		},
	)

	// InteractionsRecorded zählt gespeicherte Interaktionen je Typ.
	InteractionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of persisted interactions by type.",
		},
		[]string{"type"},
	)

	// InteractionsPruned zählt durch die Aufbewahrungsregel gelöschte Interaktionen.
	InteractionsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_pruned_total",
			Help: "Total number of interactions removed by the history retention job.",
		},
	)
)

func init() {
	prometheus.MustRegister(PipelineRuns, Verdicts, FallbackVerdicts, InteractionsRecorded, InteractionsPruned)
}
