package statistics

import (
	"github.com/markusressel/pid2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controllers []controller.LoopController

	cycles        *prometheus.Desc
	skippedCycles *prometheus.Desc
	actionAvg     *prometheus.Desc
	actionMax     *prometheus.Desc
}

func NewControllerCollector(controllers []controller.LoopController) *ControllerCollector {
	return &ControllerCollector{
		controllers: controllers,
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycles"),
			"Counter for cycles run by this controller",
			[]string{"id"}, nil,
		),
		skippedCycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "skipped_cycles"),
			"Counter for ticks that were skipped because no time had passed",
			[]string{"id"}, nil,
		),
		actionAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "action_avg"),
			"Average action magnitude over the recent cycles",
			[]string{"id"}, nil,
		),
		actionMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "action_max"),
			"Maximum action magnitude over the recent cycles",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cycles
	ch <- collector.skippedCycles
	ch <- collector.actionAvg
	ch <- collector.actionMax
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, contr := range collector.controllers {
		id := contr.GetId()
		stats := contr.GetStatistics()
		ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(stats.Cycles), id)
		ch <- prometheus.MustNewConstMetric(collector.skippedCycles, prometheus.CounterValue, float64(stats.SkippedCycles), id)
		ch <- prometheus.MustNewConstMetric(collector.actionAvg, prometheus.GaugeValue, stats.ActionAvg, id)
		ch <- prometheus.MustNewConstMetric(collector.actionMax, prometheus.GaugeValue, stats.ActionMax, id)
	}
}
