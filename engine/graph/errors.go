package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSealed is returned when an entrance rule is changed after
	// generation has started.
	ErrSealed = errors.New("graph is sealed")
	// ErrLocked is returned when placing into a locked location.
	ErrLocked = errors.New("location is locked")
	// ErrAlreadyPlaced is returned when a location already holds an item.
	ErrAlreadyPlaced = errors.New("location already holds an item")
	// ErrUnknownLocation is returned for a location not in the graph.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrUnknownEntrance is returned for an entrance not in the graph.
	ErrUnknownEntrance = errors.New("unknown entrance")
)

// ConfigurationError reports an option value outside its valid range.
// It is raised before graph construction and is fatal to that player's
// setup.
type ConfigurationError struct {
	Option string
	Value  int
	Min    int
	Max    int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("option %s = %d is outside the valid range [%d, %d]",
		e.Option, e.Value, e.Min, e.Max)
}

// CheckRange returns a *ConfigurationError if value is outside [min, max].
func CheckRange(option string, value, min, max int) error {
	if value < min || value > max {
		return &ConfigurationError{Option: option, Value: value, Min: min, Max: max}
	}
	return nil
}

// BuildError collects structural problems found while building a graph.
type BuildError struct {
	Player   int
	Problems []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building region graph for player %d failed with %d problem(s):\n  %s",
		e.Player, len(e.Problems), strings.Join(e.Problems, "\n  "))
}
