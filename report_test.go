package geodash

import (
	"reflect"
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	d, err := NewDashboard(
		WithBoundaryFile(testBoundaries),
		WithPopulationFile(testPopulation),
		WithLoader(NewLoader()),
	)
	if err != nil {
		t.Fatal(err)
	}
	r := d.Report()

	if r.States != 3 || r.Districts != 5 || r.Records != 6 {
		t.Errorf("counts = %d/%d/%d, want 3/5/6", r.States, r.Districts, r.Records)
	}
	if !reflect.DeepEqual(r.StatesWithoutPopulation, []string{"Goa"}) {
		t.Errorf("StatesWithoutPopulation = %q, want [Goa]", r.StatesWithoutPopulation)
	}
	if !reflect.DeepEqual(r.PopulationWithoutStates, []string{"Tamil Nadu"}) {
		t.Errorf("PopulationWithoutStates = %q, want [Tamil Nadu]", r.PopulationWithoutStates)
	}
	if len(r.DuplicateDistricts) != 0 {
		t.Errorf("DuplicateDistricts = %q, want none", r.DuplicateDistricts)
	}
	if r.OK() {
		t.Error("OK() = true with an unmatched state")
	}

	out := r.String()
	for _, want := range []string{"states: 3, districts: 5, boundary records: 6", "states without population (1):", "  Goa", "  Tamil Nadu"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}

func TestReport_Duplicates(t *testing.T) {
	path := writeTemp(t, "dup.geojson", `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"st_nm":"Kerala","district":"Kottayam"},"geometry":{"type":"Polygon","coordinates":[[[76,9],[77,9],[77,10],[76,10],[76,9]]]}},
		{"type":"Feature","properties":{"st_nm":"Kerala","district":"Kottayam"},"geometry":{"type":"Polygon","coordinates":[[[76,10],[77,10],[77,11],[76,11],[76,10]]]}}
	]}`)
	d, err := NewDashboard(
		WithBoundaryFile(path),
		WithPopulationFile(testPopulation),
		WithLoader(NewLoader()),
	)
	if err != nil {
		t.Fatal(err)
	}
	r := d.Report()
	if !reflect.DeepEqual(r.DuplicateDistricts, []string{"Kerala/Kottayam"}) {
		t.Errorf("DuplicateDistricts = %q, want [Kerala/Kottayam]", r.DuplicateDistricts)
	}
	if len(r.StatesWithoutPopulation) != 0 {
		t.Errorf("StatesWithoutPopulation = %q, want none", r.StatesWithoutPopulation)
	}
	if r.OK() {
		t.Error("OK() = true with a duplicated district")
	}
}
