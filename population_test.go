package geodash

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadPopulation(t *testing.T) {
	pop, err := LoadPopulation(testPopulation)
	if err != nil {
		t.Fatalf("LoadPopulation() error = %v, want nil", err)
	}
	if len(pop) != 3 {
		t.Fatalf("len = %d, want 3", len(pop))
	}

	want := map[string]PopulationRecord{
		"Maharashtra": {State: "Maharashtra", Total: 112374333, Male: 58243056, Female: 54131277},
		"Kerala":      {State: "Kerala", Total: 33406061, Male: 16027412, Female: 17378649},
		"Tamil Nadu":  {State: "Tamil Nadu", Total: 72147030, Male: 36137975, Female: 36009055},
	}
	for k, w := range want {
		if got, ok := pop[k]; !ok || got != w {
			t.Errorf("pop[%q] = %+v (present %v), want %+v", k, got, ok, w)
		}
	}
}

func TestLoadPopulation_HeaderVariants(t *testing.T) {
	path := writeTemp(t, "p.csv", "\ufeff Year ,STATE,Total_Population,Population_Female,Population_Male\n2011,goa,1458545,718140,740405\n")
	pop, err := LoadPopulation(path)
	if err != nil {
		t.Fatalf("LoadPopulation() error = %v, want nil", err)
	}
	want := PopulationRecord{State: "Goa", Total: 1458545, Male: 740405, Female: 718140}
	if pop["Goa"] != want {
		t.Errorf("pop[Goa] = %+v, want %+v", pop["Goa"], want)
	}
}

func TestLoadPopulation_Truncates(t *testing.T) {
	path := writeTemp(t, "p.csv", "State,total_population,population_male,population_female\nGoa,1458545.9,740405.5,7.1814e5\n")
	pop, err := LoadPopulation(path)
	if err != nil {
		t.Fatal(err)
	}
	want := PopulationRecord{State: "Goa", Total: 1458545, Male: 740405, Female: 718140}
	if pop["Goa"] != want {
		t.Errorf("pop[Goa] = %+v, want %+v", pop["Goa"], want)
	}
}

func TestLoadPopulation_Errors(t *testing.T) {
	const header = "State,total_population,population_male,population_female\n"
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"empty file", "", "empty file"},
		{"missing column", "State,total_population,population_male\nGoa,1,1\n", `missing column "population_female"`},
		{"no rows", header, "no data rows"},
		{"non-numeric", header + "Goa,many,1,1\n", "non-numeric"},
		{"empty count", header + "Goa,,1,1\n", "empty value"},
		{"NaN", header + "Goa,NaN,1,1\n", "non-numeric"},
		{"negative", header + "Goa,-5,1,1\n", "negative"},
		{"blank state", header + " ,1,1,1\n", "empty state name"},
		{"duplicate state", header + "Goa,1,1,1\n GOA ,2,2,2\n", `duplicate state "Goa"`},
		{"ragged row", header + "Goa,1,1\n", "reading row"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "p.csv", tt.content)
			_, err := LoadPopulation(path)
			var lerr *LoadError
			if !errors.As(err, &lerr) {
				t.Fatalf("LoadPopulation() error = %v, want *LoadError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadPopulation_MissingFile(t *testing.T) {
	_, err := LoadPopulation("testdata/nope.csv")
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
}
