/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package isis

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRegisterer is the narrow slice of prometheus.Registerer that
// NewInstance needs. Passing nil disables registration entirely (tests
// construct many instances and would otherwise collide on label sets).
type MetricsRegisterer interface {
	MustRegister(...prometheus.Collector)
}

// metricSet holds the per-node prometheus collectors named in spec
// section 3: event counters, adjacency-up, lsp-flood and spf-run
// counts.
type metricSet struct {
	events       *prometheus.CounterVec
	adjacencyUp  prometheus.Gauge
	lspFlood     prometheus.Counter
	spfRun       prometheus.Counter
}

func newMetricSet(reg MetricsRegisterer, node string) *metricSet {
	m := &metricSet{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isis",
			Name:      "events_total",
			Help:      "Count of scheduling events observed by the protocol instance, by kind.",
			ConstLabels: prometheus.Labels{"node": node},
		}, []string{"kind"}),
		adjacencyUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "isis",
			Name:        "adjacency_up",
			Help:        "Number of adjacencies currently in the Up state.",
			ConstLabels: prometheus.Labels{"node": node},
		}),
		lspFlood: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "isis",
			Name:        "lsp_flood_total",
			Help:        "Count of LSP install events that triggered a flood.",
			ConstLabels: prometheus.Labels{"node": node},
		}),
		spfRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "isis",
			Name:        "spf_run_total",
			Help:        "Count of SPF runs triggered from this node.",
			ConstLabels: prometheus.Labels{"node": node},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.events, m.adjacencyUp, m.lspFlood, m.spfRun)
	}

	return m
}

func (m *metricSet) observeEvent(kind EventKind) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind.String()).Inc()
}

func (m *metricSet) setAdjacencyUp(n int) {
	if m == nil {
		return
	}
	m.adjacencyUp.Set(float64(n))
}

func (m *metricSet) incLSPFlood() {
	if m == nil {
		return
	}
	m.lspFlood.Inc()
}

func (m *metricSet) incSPFRun() {
	if m == nil {
		return
	}
	m.spfRun.Inc()
}
