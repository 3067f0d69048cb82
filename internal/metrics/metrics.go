// Package metrics exposes Prometheus counters for the RPC surface.
package metrics

import "github.com/prometheus/client_golang/prometheus"

type RPC struct {
	requests *prometheus.CounterVec
}

func NewRPC(reg prometheus.Registerer) *RPC {
	m := &RPC{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindwell",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPC requests by method and status code",
		}, []string{"method", "code"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requests)
	return m
}

func (m *RPC) Observe(method, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, code).Inc()
}
