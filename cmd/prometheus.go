package cmd

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	sim "github.com/inference-sim/checkout-sim/sim"
)

// WriteMetricsTextfile exports the end-of-run report as gauges in the
// node_exporter textfile collector format.
func WriteMetricsTextfile(report *sim.Report, path string) error {
	reg := prometheus.NewRegistry()

	served := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "checkout_line_served_customers",
		Help: "Customers whose checkout finished at this line",
	}, []string{"line"})
	queued := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "checkout_line_queue_length",
		Help: "Customers still waiting in this line at the end of the run",
	}, []string{"line"})
	avgWait := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "checkout_line_average_wait_ticks",
		Help: "Average ticks from line entry to checkout start (lines that served nobody are omitted)",
	}, []string{"line"})
	inService := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "checkout_in_service_customers",
		Help: "Customers being checked out when the run ended",
	})
	arrived := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "checkout_customers_arrived",
		Help: "Customers generated during the run",
	})
	opened := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "checkout_lines_opened",
		Help: "Lines opened after the start of the run",
	})
	shifted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "checkout_customers_shifted",
		Help: "Customers moved onto newly opened lines",
	})
	reg.MustRegister(served, queued, avgWait, inService, arrived, opened, shifted)

	for _, l := range report.Lines {
		label := strconv.Itoa(l.Line)
		served.WithLabelValues(label).Set(float64(l.ServedCount))
		queued.WithLabelValues(label).Set(float64(l.RemainingQueueLength))
		if l.AverageWait != nil {
			avgWait.WithLabelValues(label).Set(float64(*l.AverageWait))
		}
	}
	inService.Set(float64(report.InServiceCount))
	arrived.Set(float64(report.CustomersArrived))
	opened.Set(float64(report.LinesOpened))
	shifted.Set(float64(report.CustomersShifted))

	if report.AggregateAverageWait != nil {
		aggregate := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "checkout_average_wait_ticks",
			Help: "Average wait over every served customer",
		})
		reg.MustRegister(aggregate)
		aggregate.Set(float64(*report.AggregateAverageWait))
	}

	return prometheus.WriteToTextfile(path, reg)
}
