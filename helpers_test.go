package geodash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
)

const (
	testBoundaries = "testdata/boundaries.geojson"
	testPopulation = "testdata/population.csv"
)

// writeTemp writes content to name inside a per-test directory and returns its path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// square returns the axis-aligned lon/lat square with corners (x0, y0) and (x1, y1).
func square(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

func record(state, district string, g orb.Geometry) BoundaryRecord {
	return BoundaryRecord{StateName: state, DistrictName: district, Geometry: g}
}
