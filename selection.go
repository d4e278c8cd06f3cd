package geodash

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Selection is the state and district picked by the user.
type Selection struct {
	State    string
	District string
}

// SelectionView holds the geometries drawn for one selection.
type SelectionView struct {
	AllStates            []JoinedRecord // One dissolved record per state, sorted by name
	AllDistrictsInState  []JoinedRecord // Every record of the selected state, in input order
	SelectedStateOutline JoinedRecord   // Dissolved record of the selected state
	SelectedDistrict     JoinedRecord   // The one record matching state and district
}

// maxSuggestions caps the names offered in a SelectionError.
const maxSuggestions = 3

// Resolve derives the selection views from the joined records, recomputing the
// state dissolve on every call. It returns a *SelectionError when the state has
// no records or the district does not match exactly one record.
func Resolve(joined []JoinedRecord, sel Selection) (*SelectionView, error) {
	states, err := Dissolve(joined)
	if err != nil {
		return nil, err
	}
	return resolve(joined, states, sel)
}

// resolve is Resolve over an already dissolved state layer.
func resolve(joined, states []JoinedRecord, sel Selection) (*SelectionView, error) {
	i := sort.Search(len(states), func(i int) bool { return states[i].StateName >= sel.State })
	if i == len(states) || states[i].StateName != sel.State {
		return nil, &SelectionError{
			State:        sel.State,
			UnknownState: true,
			Suggestions:  closest(sel.State, stateNames(states)),
		}
	}

	view := &SelectionView{
		AllStates:            states,
		SelectedStateOutline: states[i],
	}

	var matches []JoinedRecord
	var districts []string
	for _, jr := range joined {
		if jr.StateName != sel.State {
			continue
		}
		view.AllDistrictsInState = append(view.AllDistrictsInState, jr)
		districts = append(districts, jr.DistrictName)
		if jr.DistrictName == sel.District {
			matches = append(matches, jr)
		}
	}

	if len(matches) != 1 {
		serr := &SelectionError{State: sel.State, District: sel.District, Matches: len(matches)}
		if len(matches) == 0 {
			serr.Suggestions = closest(sel.District, districts)
		}
		return nil, serr
	}
	view.SelectedDistrict = matches[0]
	return view, nil
}

func stateNames(states []JoinedRecord) []string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.StateName
	}
	return names
}

// closest returns up to maxSuggestions distinct candidates nearest to name by
// case-insensitive edit distance, ignoring candidates more than half the
// length of name away.
func closest(name string, candidates []string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	limit := len([]rune(name))/2 + 1

	type scored struct {
		name string
		dist int
	}
	seen := make(map[string]bool, len(candidates))
	var hits []scored
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		d := levenshtein.ComputeDistance(name, strings.ToLower(strings.TrimSpace(c)))
		if d <= limit {
			hits = append(hits, scored{c, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})

	var out []string
	for i := 0; i < len(hits) && i < maxSuggestions; i++ {
		out = append(out, hits[i].name)
	}
	return out
}
