package geodash

import (
	"errors"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// BoundaryRecord is one district polygon from the boundary file. Names are kept
// exactly as they appear in the file; a state usually owns many records.
type BoundaryRecord struct {
	StateName    string
	DistrictName string
	Geometry     orb.Geometry // orb.Polygon or orb.MultiPolygon
}

// BoundarySet is the parsed boundary file.
type BoundarySet struct {
	States    []string            // Sorted, deduplicated state names
	Districts map[string][]string // state -> sorted, deduplicated district names
	Records   []BoundaryRecord    // Every polygonal feature, in file order
}

// HasDistrict reports whether district is offered for state.
func (bs *BoundarySet) HasDistrict(state, district string) bool {
	names := bs.Districts[state]
	i := sort.SearchStrings(names, district)
	return i < len(names) && names[i] == district
}

// LoadBoundaries parses a GeoJSON FeatureCollection of district polygons.
//
// Features missing the state or district property stay in Records but are left
// out of the state/district index. Features without polygonal geometry are
// skipped. A file with no feature that is both named and polygonal is a
// *LoadError.
func LoadBoundaries(path string, opts ...Option) (*BoundarySet, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return loadBoundaries(path, cfg.StateProperty, cfg.DistrictProperty)
}

func loadBoundaries(path, stateKey, districtKey string) (*BoundarySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, loadErrorf(path, "parsing feature collection: %w", err)
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return nil, &LoadError{Path: path, Err: errors.New("not a FeatureCollection: " + fc.Type)}
	}

	index := make(map[string]map[string]struct{})
	records := make([]BoundaryRecord, 0, len(fc.Features))
	skipped := 0

	for i, f := range fc.Features {
		if f == nil || !isPolygonal(f.Geometry) {
			skipped++
			continue
		}

		state := stringProperty(f.Properties, stateKey)
		district := stringProperty(f.Properties, districtKey)
		records = append(records, BoundaryRecord{
			StateName:    state,
			DistrictName: district,
			Geometry:     f.Geometry,
		})

		if strings.TrimSpace(state) == "" || strings.TrimSpace(district) == "" {
			log.Printf("warning: %s: feature %d has no %s/%s, not indexed", path, i, stateKey, districtKey)
			continue
		}
		if index[state] == nil {
			index[state] = make(map[string]struct{})
		}
		index[state][district] = struct{}{}
	}

	if skipped > 0 {
		log.Printf("warning: %s: skipped %d features without polygon geometry", path, skipped)
	}
	if len(index) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("no usable features")}
	}

	bs := &BoundarySet{
		States:    make([]string, 0, len(index)),
		Districts: make(map[string][]string, len(index)),
		Records:   records,
	}
	for state, districts := range index {
		bs.States = append(bs.States, state)
		names := make([]string, 0, len(districts))
		for d := range districts {
			names = append(names, d)
		}
		sort.Strings(names)
		bs.Districts[state] = names
	}
	sort.Strings(bs.States)
	return bs, nil
}

func isPolygonal(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) > 0
	case orb.MultiPolygon:
		return len(g) > 0
	}
	return false
}

// stringProperty returns the string value of key, or "" when it is absent or
// not a string.
func stringProperty(props geojson.Properties, key string) string {
	s, _ := props[key].(string)
	return s
}
