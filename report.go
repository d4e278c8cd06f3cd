package geodash

import (
	"fmt"
	"sort"
	"strings"
)

// Report summarizes how well the boundary and population files line up.
type Report struct {
	States    int // Indexed states
	Districts int // Indexed (state, district) pairs
	Records   int // Boundary records, including unindexed ones

	StatesWithoutPopulation []string // Boundary states with no population row
	PopulationWithoutStates []string // Canonical population states with no boundary
	DuplicateDistricts      []string // "state/district" pairs owned by more than one record
}

// Report checks the loaded data for join and selection problems.
func (d *Dashboard) Report() Report {
	r := Report{
		States:  len(d.Boundaries.States),
		Records: len(d.Boundaries.Records),
	}

	seen := make(map[string]bool)
	for _, s := range d.Boundaries.States {
		r.Districts += len(d.Boundaries.Districts[s])
		key := Canonicalize(s)
		seen[key] = true
		if _, ok := d.Population[key]; !ok {
			r.StatesWithoutPopulation = append(r.StatesWithoutPopulation, s)
		}
	}
	for key := range d.Population {
		if !seen[key] {
			r.PopulationWithoutStates = append(r.PopulationWithoutStates, key)
		}
	}
	sort.Strings(r.PopulationWithoutStates)

	counts := make(map[string]int)
	for _, b := range d.Boundaries.Records {
		if b.StateName == "" || b.DistrictName == "" {
			continue
		}
		counts[b.StateName+"/"+b.DistrictName]++
	}
	for k, n := range counts {
		if n > 1 {
			r.DuplicateDistricts = append(r.DuplicateDistricts, k)
		}
	}
	sort.Strings(r.DuplicateDistricts)
	return r
}

// OK reports whether every state joins and every district is selectable.
func (r Report) OK() bool {
	return len(r.StatesWithoutPopulation) == 0 && len(r.DuplicateDistricts) == 0
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "states: %d, districts: %d, boundary records: %d\n", r.States, r.Districts, r.Records)
	writeList(&b, "states without population", r.StatesWithoutPopulation)
	writeList(&b, "population rows without boundaries", r.PopulationWithoutStates)
	writeList(&b, "duplicate districts", r.DuplicateDistricts)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(b, "  %s\n", it)
	}
}
