package geodash

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPopulation is returned when a state has no matching row in the population table.
var ErrNoPopulation = errors.New("no population record")

// LoadError reports a reference file that could not be loaded. It is fatal at
// startup: there is no partially loaded mode.
type LoadError struct {
	Path string // File being loaded
	Err  error  // Underlying cause
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// loadErrorf builds a *LoadError for path with a formatted cause.
func loadErrorf(path, format string, args ...any) *LoadError {
	return &LoadError{Path: path, Err: fmt.Errorf(format, args...)}
}

// SelectionError reports a selection that does not resolve to exactly one
// boundary record. Duplicate or missing names in the boundary data are a data
// quality problem and are surfaced instead of picking an arbitrary record.
type SelectionError struct {
	State        string
	District     string   // Empty when the state itself did not resolve
	UnknownState bool     // The state has no boundary records
	Matches      int      // Number of records that matched
	Suggestions  []string // Closest known names when Matches == 0
}

func (e *SelectionError) Error() string {
	var b strings.Builder
	switch {
	case e.UnknownState:
		fmt.Fprintf(&b, "state %q not found in boundary data", e.State)
	case e.Matches == 0:
		fmt.Fprintf(&b, "district %q not found in state %q", e.District, e.State)
	default:
		fmt.Fprintf(&b, "district %q in state %q is ambiguous: %d boundary records match", e.District, e.State, e.Matches)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}
