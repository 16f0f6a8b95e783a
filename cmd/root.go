package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/checkout-sim/sim"
	"github.com/inference-sim/checkout-sim/sim/trace"
)

var (
	// CLI flags for the store configuration
	initialCashiers   int     // Lines open at tick 0
	simulationHorizon int64   // Total simulation time (in ticks)
	arrivalProb       float64 // Per-tick arrival probability
	avgCustomerTime   int     // Mean checkout duration (in ticks)
	maxLines          int     // Upper bound on open lines
	maxWait           int     // Projected wait that triggers a new line
	seed              int64   // Seed for arrivals and checkout durations
	traceLevel        string  // Decision trace verbosity

	// CLI flags for inputs and outputs
	logLevel         string // Log verbosity level
	scenarioPath     string // Optional YAML scenario file
	resultsPath      string // File to save the JSON report to
	metricsTextfile  string // File to save Prometheus gauges to
	queueLengthsPath string // File to save the per-tick queue length series to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "checkout-sim",
	Short: "Discrete-event simulator for grocery checkout lines",
}

// runCmd executes the simulation using a scenario file and/or CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the checkout simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		log := logrus.WithField("run_id", uuid.NewString())
		log.Infof("Starting simulation with %d cashiers (max %d), horizon=%dticks, p=%.2f, seed=%d",
			cfg.InitialNumCashiers, cfg.MaxCheckoutLines, cfg.SimulationLength, cfg.ProbabilityOfArrival, cfg.Seed)

		if err := executeRun(cfg, os.Stdout, log); err != nil {
			log.Fatalf("%v", err)
		}
		log.Info("Simulation complete.")
	},
}

// registerRunFlags binds the run flags to the package-level variables.
func registerRunFlags(cmd *cobra.Command) {
	defaults := sim.DefaultSimConfig()

	cmd.Flags().IntVar(&initialCashiers, "initial-cashiers", defaults.InitialNumCashiers, "Number of lines open at the start")
	cmd.Flags().Int64Var(&simulationHorizon, "horizon", defaults.SimulationLength, "Total simulation horizon (in ticks)")
	cmd.Flags().Float64Var(&arrivalProb, "arrival-prob", defaults.ProbabilityOfArrival, "Probability that a customer arrives in a tick")
	cmd.Flags().IntVar(&avgCustomerTime, "avg-customer-time", defaults.AverageCustomerTime, "Average checkout duration (in ticks)")
	cmd.Flags().IntVar(&maxLines, "max-lines", defaults.MaxCheckoutLines, "Maximum number of checkout lines")
	cmd.Flags().IntVar(&maxWait, "max-wait", defaults.MaxWaitThreshold, "Shortest projected wait above which a new line opens")
	cmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for arrivals and checkout durations")
	cmd.Flags().StringVar(&traceLevel, "trace-level", defaults.TraceLevel, "Decision trace level (none, decisions)")

	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file; explicit flags override its values")
	cmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save the JSON report to")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "File to save Prometheus gauges to (textfile collector format)")
	cmd.Flags().StringVar(&queueLengthsPath, "queue-lengths-path", "", "File to save the per-tick queued customer counts to")
}

// resolveConfig builds the run configuration: defaults, then the scenario
// file if given, then every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	if scenarioPath != "" {
		loaded, err := LoadScenario(scenarioPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("initial-cashiers") {
		cfg.InitialNumCashiers = initialCashiers
	}
	if flags.Changed("horizon") {
		cfg.SimulationLength = simulationHorizon
	}
	if flags.Changed("arrival-prob") {
		cfg.ProbabilityOfArrival = arrivalProb
	}
	if flags.Changed("avg-customer-time") {
		cfg.AverageCustomerTime = avgCustomerTime
	}
	if flags.Changed("max-lines") {
		cfg.MaxCheckoutLines = maxLines
	}
	if flags.Changed("max-wait") {
		cfg.MaxWaitThreshold = maxWait
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = traceLevel
	}
	return cfg, nil
}

// executeRun runs one simulation, prints the report to out and writes any
// requested output files.
func executeRun(cfg sim.SimConfig, out io.Writer, log *logrus.Entry) error {
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return err
	}
	s.Log = log
	s.Run()
	report := s.Report()
	report.Print(out)

	if s.Trace != nil {
		summary := trace.Summarize(s.Trace)
		log.Infof("Trace: %d arrivals, %d lines opened, %d customers shifted (mean %.2f, max %d per opening)",
			summary.TotalArrivals, summary.LinesOpened, summary.CustomersShifted,
			summary.MeanShiftsPerOpening, summary.MaxShiftsPerOpening)
	}

	if resultsPath != "" {
		if err := report.SaveResults(resultsPath); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		log.Infof("Saved report to %s", resultsPath)
	}
	if queueLengthsPath != "" {
		if err := s.Metrics.SaveQueueLengths(queueLengthsPath); err != nil {
			return fmt.Errorf("saving queue lengths: %w", err)
		}
	}
	if metricsTextfile != "" {
		if err := WriteMetricsTextfile(report, metricsTextfile); err != nil {
			return fmt.Errorf("saving metrics textfile: %w", err)
		}
		log.Infof("Saved Prometheus gauges to %s", metricsTextfile)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	registerRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
