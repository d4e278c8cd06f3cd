package geodash

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/twpayne/go-geos"
)

// Dissolve merges the district records of each state into one state record
// whose geometry is the union of its districts, with the internal district
// borders removed. Records without a state name are ignored.
//
// The result is sorted by state name. Each state record has an empty district
// name and takes its Population and HoverLabel from the state's first record
// in input order.
func Dissolve(joined []JoinedRecord) ([]JoinedRecord, error) {
	groups := make(map[string][]int)
	for i, jr := range joined {
		if jr.StateName == "" {
			continue
		}
		groups[jr.StateName] = append(groups[jr.StateName], i)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]JoinedRecord, 0, len(names))
	for _, name := range names {
		members := groups[name]
		geoms := make([]orb.Geometry, len(members))
		for i, idx := range members {
			geoms[i] = joined[idx].Geometry
		}
		merged, err := Union(geoms)
		if err != nil {
			return nil, fmt.Errorf("dissolving state %q: %w", name, err)
		}

		first := joined[members[0]]
		out = append(out, JoinedRecord{
			BoundaryRecord: BoundaryRecord{
				StateName: name,
				Geometry:  merged,
			},
			Population: first.Population,
			HoverLabel: first.HoverLabel,
		})
	}
	return out, nil
}

// Union returns the polygonal union of geoms as an orb.Polygon or
// orb.MultiPolygon. Invalid input polygons are repaired before the union.
func Union(geoms []orb.Geometry) (orb.Geometry, error) {
	if len(geoms) == 0 {
		return nil, fmt.Errorf("union of no geometries")
	}

	parts := make([]*geos.Geom, 0, len(geoms))
	for i, g := range geoms {
		gg, err := toGEOS(g)
		if err != nil {
			return nil, fmt.Errorf("geometry %d: %w", i, err)
		}
		parts = append(parts, gg)
	}

	// The collection takes ownership of parts.
	coll := geos.NewCollection(geos.TypeIDGeometryCollection, parts)
	defer coll.Destroy()
	union := coll.UnaryUnion()
	defer union.Destroy()

	return fromGEOS(union)
}

func toGEOS(g orb.Geometry) (*geos.Geom, error) {
	b, err := wkb.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encoding wkb: %w", err)
	}
	gg, err := geos.NewGeomFromWKB(b)
	if err != nil {
		return nil, fmt.Errorf("decoding wkb: %w", err)
	}
	if !gg.IsValid() {
		fixed := gg.MakeValid()
		gg.Destroy()
		gg = fixed
	}
	return gg, nil
}

func fromGEOS(gg *geos.Geom) (orb.Geometry, error) {
	g, err := wkb.Unmarshal(gg.ToWKB())
	if err != nil {
		return nil, fmt.Errorf("decoding union: %w", err)
	}
	return polygonal(g), nil
}

// polygonal keeps only the polygon parts of g. MakeValid and UnaryUnion may
// return collections that also hold degenerate lines or points.
func polygonal(g orb.Geometry) orb.Geometry {
	switch g := g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return g
	case orb.Collection:
		var mp orb.MultiPolygon
		for _, part := range g {
			switch p := polygonal(part).(type) {
			case orb.Polygon:
				mp = append(mp, p)
			case orb.MultiPolygon:
				mp = append(mp, p...)
			}
		}
		if len(mp) == 1 {
			return mp[0]
		}
		return mp
	}
	return orb.MultiPolygon{}
}
