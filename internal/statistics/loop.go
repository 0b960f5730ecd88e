package statistics

import (
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/prometheus/client_golang/prometheus"
)

const loopSubsystem = "loop"

type LoopCollector struct {
	loops []control_loop.ControlLoop

	error    *prometheus.Desc
	integral *prometheus.Desc
	action   *prometheus.Desc
	measured *prometheus.Desc
	linked   *prometheus.Desc
}

func NewLoopCollector(loops []control_loop.ControlLoop) *LoopCollector {
	return &LoopCollector{
		loops: loops,
		error: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "error"),
			"Error fed into the controller in the last cycle",
			[]string{"id", "axis"}, nil,
		),
		integral: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "integral_error"),
			"Accumulated integral error of the controller",
			[]string{"id", "axis"}, nil,
		),
		action: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "action"),
			"Action computed by the controller in the last cycle",
			[]string{"id", "axis"}, nil,
		),
		measured: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "measured"),
			"Current value of the simulated plant",
			[]string{"id", "axis"}, nil,
		),
		linked: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "linked"),
			"1 if the gains of this loop are linked to another loop",
			[]string{"id", "master"}, nil,
		),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.error
	ch <- collector.integral
	ch <- collector.action
	ch <- collector.measured
	ch <- collector.linked
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	for _, loop := range collector.loops {
		id := loop.GetId()
		sample := loop.LastSample()

		axes := 1
		if loop.IsVector() {
			axes = len(axisLabels)
		}
		collector.collectAxes(ch, collector.error, sample.Error, id, axes)
		collector.collectAxes(ch, collector.integral, sample.Integral, id, axes)
		collector.collectAxes(ch, collector.action, sample.Action, id, axes)
		collector.collectAxes(ch, collector.measured, sample.Measured, id, axes)

		if loop.GetControllerType() == configuration.ControllerTypePI {
			master := loop.LinkedTo()
			linked := 0.0
			if len(master) > 0 {
				linked = 1
			}
			ch <- prometheus.MustNewConstMetric(collector.linked, prometheus.GaugeValue, linked, id, master)
		}
	}
}

func (collector *LoopCollector) collectAxes(ch chan<- prometheus.Metric, desc *prometheus.Desc, value pid.Vec3d, id string, axes int) {
	components := value.Components()
	for i := 0; i < axes; i++ {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, components[i], id, axisLabels[i])
	}
}
