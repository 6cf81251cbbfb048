// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nsmetrics exposes the Prometheus collectors a running
// gossip Task reports: commits, confidence, gossip send/drop counts and
// payload requests. The Adversaries gauge is registered as well, but no
// Task sets it, so it stays at zero.
package nsmetrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the collectors for one Nightshade session.
type Metrics struct {
	Registry prometheus.Registerer

	Commits          prometheus.Counter
	PrimaryConfidence prometheus.Gauge
	SecondaryConfidence prometheus.Gauge
	Adversaries      prometheus.Gauge
	GossipSent       prometheus.Counter
	GossipDropped    *prometheus.CounterVec
	PayloadRequests  prometheus.Counter
}

// New registers and returns a Metrics bundle against reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Registry: reg,
		Commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightshade",
			Name:      "commits_total",
			Help:      "Number of times this engine has committed.",
		}),
		PrimaryConfidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nightshade",
			Name:      "primary_confidence",
			Help:      "Current primary confidence of the owner's opinion.",
		}),
		SecondaryConfidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nightshade",
			Name:      "secondary_confidence",
			Help:      "Current secondary confidence of the owner's opinion.",
		}),
		Adversaries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nightshade",
			Name:      "adversaries_flagged",
			Help:      "Number of peers currently flagged adversarial.",
		}),
		GossipSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightshade",
			Name:      "gossip_sent_total",
			Help:      "Number of outbound gossip envelopes sent.",
		}),
		GossipDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nightshade",
			Name:      "gossip_dropped_total",
			Help:      "Number of inbound gossip envelopes dropped, by reason.",
		}, []string{"reason"}),
		PayloadRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightshade",
			Name:      "payload_requests_total",
			Help:      "Number of payload requests emitted.",
		}),
	}

	collectors := []prometheus.Collector{
		m.Commits, m.PrimaryConfidence, m.SecondaryConfidence,
		m.Adversaries, m.GossipSent, m.GossipDropped, m.PayloadRequests,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
