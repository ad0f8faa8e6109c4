package bridge

import (
	"github.com/jdecock/go-novelan/reading"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	readingDesc = prometheus.NewDesc(
		"novelan_reading",
		"Current value of a heat pump reading. Binary readings report 0/1, stages 1-4.",
		[]string{"field", "kind"},
		nil,
	)
	pollSuccessDesc = prometheus.NewDesc(
		"novelan_poll_success",
		"Whether the last poll cycle succeeded (1=ok, 0=error).",
		nil,
		nil,
	)
	lastPollDesc = prometheus.NewDesc(
		"novelan_last_poll_timestamp_seconds",
		"Timestamp of the last successful poll (epoch seconds).",
		nil,
		nil,
	)
)

// MetricsCollector exports the last parsed snapshot. It never touches the
// device, scrapes read the bridge's cached state.
type MetricsCollector struct {
	bridge *Bridge
}

// MetricsCollector returns the collector to register with prometheus.
func (b *Bridge) MetricsCollector() prometheus.Collector {
	return &MetricsCollector{bridge: b}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- readingDesc
	ch <- pollSuccessDesc
	ch <- lastPollDesc
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot, lastPoll, lastError := c.bridge.Snapshot()

	success := 1.0
	if lastError != nil || lastPoll.IsZero() {
		success = 0.0
	}
	ch <- prometheus.MustNewConstMetric(pollSuccessDesc, prometheus.GaugeValue, success)

	if !lastPoll.IsZero() {
		ch <- prometheus.MustNewConstMetric(lastPollDesc, prometheus.GaugeValue, float64(lastPoll.Unix()))
	}

	for name, parsed := range snapshot {
		if parsed.Unknown {
			continue
		}

		var value float64
		switch parsed.Kind {
		case reading.Stage:
			value = float64(parsed.Stage)
		case reading.BinarySensor:
			if parsed.On {
				value = 1
			}
		case reading.Text, reading.Duration, reading.ErrorLog, reading.SystemStatus:
			continue
		default:
			value = parsed.Number
		}

		ch <- prometheus.MustNewConstMetric(readingDesc, prometheus.GaugeValue, value, name, string(parsed.Kind))
	}
}
