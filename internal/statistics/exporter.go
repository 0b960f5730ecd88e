package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "pid2go"
)

var axisLabels = []string{"x", "y", "z"}

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
