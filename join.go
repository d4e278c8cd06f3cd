package geodash

import "strings"

// LineBreak is the line break markup understood by the map renderer's hover labels.
const LineBreak = "<br>"

// JoinedRecord is a BoundaryRecord with the population of its state attached.
type JoinedRecord struct {
	BoundaryRecord
	Population *PopulationRecord // nil when the state has no population row
	HoverLabel string
}

// Join attaches population to every boundary record by canonical state name.
// It is a left join: unmatched records keep a nil Population and a label of
// just the state name. The output has one record per input record, in order.
func Join(boundaries []BoundaryRecord, population map[string]PopulationRecord) []JoinedRecord {
	out := make([]JoinedRecord, len(boundaries))
	for i, b := range boundaries {
		state := Canonicalize(b.StateName)
		jr := JoinedRecord{BoundaryRecord: b}
		if p, ok := population[state]; ok && state != "" {
			jr.Population = &p
		}
		jr.HoverLabel = HoverLabel(state, jr.Population)
		out[i] = jr
	}
	return out
}

// HoverLabel returns the hover text for state. With population it lists the
// total, male and female counts on separate lines.
func HoverLabel(state string, p *PopulationRecord) string {
	if p == nil {
		return state
	}
	return strings.Join([]string{
		state,
		"Total: " + FormatCount(p.Total),
		"Male: " + FormatCount(p.Male),
		"Female: " + FormatCount(p.Female),
	}, LineBreak)
}
