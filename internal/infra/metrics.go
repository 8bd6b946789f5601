package infra

import (
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PromRecorder struct {
	submissions *prometheus.CounterVec
	assignments *prometheus.CounterVec
	updates     *prometheus.CounterVec
}

func NewPromRecorder(reg prometheus.Registerer) ports.OutcomeRecorder {
	f := promauto.With(reg)
	return &PromRecorder{
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ambiance",
			Name:      "submissions_total",
			Help:      "Evaluation submissions by outcome.",
		}, []string{"outcome"}),
		assignments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ambiance",
			Name:      "assignments_total",
			Help:      "Unseen media assignments by outcome.",
		}, []string{"outcome"}),
		updates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ambiance",
			Name:      "updates_total",
			Help:      "Evaluation updates by outcome.",
		}, []string{"outcome"}),
	}
}

func (p *PromRecorder) Submission(outcome string) { p.submissions.WithLabelValues(outcome).Inc() }
func (p *PromRecorder) Assignment(outcome string) { p.assignments.WithLabelValues(outcome).Inc() }
func (p *PromRecorder) Update(outcome string)     { p.updates.WithLabelValues(outcome).Inc() }
