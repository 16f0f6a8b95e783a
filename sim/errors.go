package sim

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQueue is returned when popping from an empty EventScheduler.
	ErrEmptyQueue = errors.New("event scheduler is empty")

	// ErrEmptyStructure is returned when removing or peeking an empty LineQueue.
	ErrEmptyStructure = errors.New("line queue is empty")
)

// ConfigError reports every problem found while validating a SimConfig.
// It is returned before any simulation state is created.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func (e *ConfigError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
