package geodash

import "fmt"

// Hierarchy is a two-level state -> sex breakdown in the labels/parents/values
// form used by sunburst charts.
type Hierarchy struct {
	Labels  []string
	Parents []string
	Values  []int64
}

// Breakdown returns the population hierarchy of state. A state without a
// population row is an error wrapping ErrNoPopulation, never a chart of zeros.
func Breakdown(population map[string]PopulationRecord, state string) (*Hierarchy, error) {
	key := Canonicalize(state)
	p, ok := population[key]
	if !ok || key == "" {
		return nil, fmt.Errorf("population breakdown for %q: %w", state, ErrNoPopulation)
	}
	return &Hierarchy{
		Labels:  []string{state, "Male", "Female"},
		Parents: []string{"", state, state},
		Values:  []int64{p.Total, p.Male, p.Female},
	}, nil
}
