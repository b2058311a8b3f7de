// Package metrics exposes Prometheus counters for calendar link generation
// and catalog loading.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "compass"

// Recorder holds the counters updated by the web layer and catalog store.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	linksGenerated prometheus.Counter
	gateDecisions  *prometheus.CounterVec
	catalogLoads   *prometheus.CounterVec
}

// New registers the compass counters on reg (prometheus.DefaultRegisterer
// when nil). Registering twice on the same registry reuses the existing
// collectors.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	links, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_links_generated_total",
		Help:      "Google Calendar links built for program deadlines.",
	}))
	if err != nil {
		return nil, fmt.Errorf("register links counter: %w", err)
	}

	gate, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_gate_decisions_total",
		Help:      "Calendar affordance decisions by view and result.",
	}, []string{"view", "result"}))
	if err != nil {
		return nil, fmt.Errorf("register gate counter: %w", err)
	}

	loads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_loads_total",
		Help:      "Catalog (re)loads by data origin.",
	}, []string{"origin"}))
	if err != nil {
		return nil, fmt.Errorf("register catalog counter: %w", err)
	}

	return &Recorder{
		linksGenerated: links,
		gateDecisions:  gate,
		catalogLoads:   loads,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// LinkGenerated counts one built calendar link.
func (r *Recorder) LinkGenerated() {
	if r == nil {
		return
	}
	r.linksGenerated.Inc()
}

// GateDecision counts one display gate evaluation for view ("card" or "detail").
func (r *Recorder) GateDecision(view string, offered bool) {
	if r == nil {
		return
	}
	result := "hidden"
	if offered {
		result = "offered"
	}
	r.gateDecisions.WithLabelValues(view, result).Inc()
}

// CatalogLoaded counts one catalog load from origin ("file", "remote", "cache", "fallback").
func (r *Recorder) CatalogLoaded(origin string) {
	if r == nil {
		return
	}
	r.catalogLoads.WithLabelValues(origin).Inc()
}
