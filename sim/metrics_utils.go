// sim/metrics_utils.go
package sim

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile (0-100) of data using the
// empirical CDF. data is not modified. Returns 0 for empty input.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := toSortedFloat64(data)
	return stat.Quantile(p/100.0, stat.Empirical, sorted, nil)
}

// CalculateMean returns the arithmetic mean of data, or 0 for empty input.
func CalculateMean[T IntOrFloat64](data []T) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(toSortedFloat64(data), nil)
}

func toSortedFloat64[T IntOrFloat64](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	sort.Float64s(out)
	return out
}

// SaveQueueLengths writes the per-tick queued-customer series as a
// comma-separated list.
func (m *Metrics) SaveQueueLengths(fileName string) error {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Errorf("Error closing file %s: %v", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	for i, n := range m.NumQueuedCustomers {
		if i > 0 {
			if _, err := writer.WriteString(", "); err != nil {
				return fmt.Errorf("writing %s: %w", fileName, err)
			}
		}
		if _, err := fmt.Fprint(writer, n); err != nil {
			return fmt.Errorf("writing %s: %w", fileName, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote queue lengths to '%s'", fileName)
	return nil
}
