// Package metrics provides request counters and gauges exposed in the
// Prometheus text exposition format (text/plain; version=0.0.4), using only
// the standard library. All metrics are safe for concurrent use.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Counter is a monotonically increasing labeled metric.
type Counter struct {
	name       string
	help       string
	labelNames []string
	mu         sync.Mutex
	values     map[string]float64
}

// Inc increments the counter series identified by the label values.
func (c *Counter) Inc(labelValues ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[labelsKey(labelValues)]++
}

// Gauge is a labeled metric whose value can go up or down.
type Gauge struct {
	name       string
	help       string
	labelNames []string
	mu         sync.Mutex
	values     map[string]float64
}

// Set replaces the gauge series identified by the label values.
func (g *Gauge) Set(value float64, labelValues ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[labelsKey(labelValues)] = value
}

// Registry holds the metrics and renders them for scraping.
type Registry struct {
	mu       sync.Mutex
	counters []*Counter
	gauges   []*Gauge
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewCounter registers a new counter with the given label names.
func (r *Registry) NewCounter(name, help string, labelNames ...string) *Counter {
	c := &Counter{name: name, help: help, labelNames: labelNames, values: make(map[string]float64)}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = append(r.counters, c)
	return c
}

// NewGauge registers a new gauge with the given label names.
func (r *Registry) NewGauge(name, help string, labelNames ...string) *Gauge {
	g := &Gauge{name: name, help: help, labelNames: labelNames, values: make(map[string]float64)}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges = append(r.gauges, g)
	return g
}

// Handler returns an http.Handler serving the text exposition format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(r.Render()))
	})
}

// Render produces the current samples in exposition format. Series are
// rendered in sorted label order so output is stable for tests and diffing.
func (r *Registry) Render() string {
	r.mu.Lock()
	counters := append([]*Counter(nil), r.counters...)
	gauges := append([]*Gauge(nil), r.gauges...)
	r.mu.Unlock()

	var b strings.Builder
	for _, c := range counters {
		c.mu.Lock()
		writeHeader(&b, c.name, c.help, "counter")
		writeSamples(&b, c.name, c.labelNames, c.values)
		c.mu.Unlock()
	}
	for _, g := range gauges {
		g.mu.Lock()
		writeHeader(&b, g.name, g.help, "gauge")
		writeSamples(&b, g.name, g.labelNames, g.values)
		g.mu.Unlock()
	}
	return b.String()
}

func writeHeader(b *strings.Builder, name, help, typ string) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s %s\n", name, typ)
}

func writeSamples(b *strings.Builder, name string, labelNames []string, values map[string]float64) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(labelNames) == 0 {
			fmt.Fprintf(b, "%s %g\n", name, values[key])
			continue
		}
		labelValues := strings.Split(key, "\x00")
		pairs := make([]string, 0, len(labelNames))
		for i, ln := range labelNames {
			v := ""
			if i < len(labelValues) {
				v = labelValues[i]
			}
			pairs = append(pairs, fmt.Sprintf("%s=%q", ln, v))
		}
		fmt.Fprintf(b, "%s{%s} %g\n", name, strings.Join(pairs, ","), values[key])
	}
}

func labelsKey(values []string) string {
	return strings.Join(values, "\x00")
}
