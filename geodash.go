// Package geodash joins Indian district boundaries with state population
// counts and resolves a (state, district) selection into the geometries and
// labels a choropleth dashboard draws.
//
// All data is loaded once and is read-only afterwards; every selection is
// resolved in full from the loaded tables.
package geodash

import (
	"fmt"
	"log"
)

// Config contains configuration options for Dashboard initialization.
type Config struct {
	BoundaryFile     string  // GeoJSON district boundaries (default: "newindia.json")
	PopulationFile   string  // CSV state population table (default: "state_wise_population.csv")
	StateProperty    string  // Feature property holding the state name (default: "st_nm")
	DistrictProperty string  // Feature property holding the district name (default: "district")
	Loader           *Loader // Memoizing loader (default: shared process-wide loader)
}

// Option is a functional option for configuring a Dashboard.
type Option func(*Config)

// WithBoundaryFile sets the boundary GeoJSON file.
func WithBoundaryFile(path string) Option {
	return func(c *Config) {
		c.BoundaryFile = path
	}
}

// WithPopulationFile sets the population CSV file.
func WithPopulationFile(path string) Option {
	return func(c *Config) {
		c.PopulationFile = path
	}
}

// WithStateProperty sets the feature property holding the state name.
func WithStateProperty(key string) Option {
	return func(c *Config) {
		c.StateProperty = key
	}
}

// WithDistrictProperty sets the feature property holding the district name.
func WithDistrictProperty(key string) Option {
	return func(c *Config) {
		c.DistrictProperty = key
	}
}

// WithLoader sets the Loader used to read and memoize the data files.
func WithLoader(l *Loader) Option {
	return func(c *Config) {
		c.Loader = l
	}
}

func defaultConfig() *Config {
	return &Config{
		BoundaryFile:     "newindia.json",
		PopulationFile:   "state_wise_population.csv",
		StateProperty:    "st_nm",
		DistrictProperty: "district",
	}
}

// Dashboard holds the loaded reference data. Safe for concurrent use: nothing
// is mutated after NewDashboard returns.
type Dashboard struct {
	Boundaries *BoundarySet
	Population map[string]PopulationRecord
	Joined     []JoinedRecord

	states []JoinedRecord // dissolved state layer, sorted by name
	config *Config
}

// NewDashboard loads the boundary and population files, joins them and
// dissolves the state layer. Failures are *LoadError (or a dissolve error) and
// leave no partial Dashboard.
//
//	d, err := NewDashboard(WithBoundaryFile("newindia.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	view, err := d.Select(Selection{State: "Kerala", District: "Kottayam"})
func NewDashboard(opts ...Option) (*Dashboard, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Loader == nil {
		cfg.Loader = defaultLoader()
	}

	bs, err := cfg.Loader.Boundaries(cfg.BoundaryFile, cfg.StateProperty, cfg.DistrictProperty)
	if err != nil {
		return nil, err
	}
	pop, err := cfg.Loader.Population(cfg.PopulationFile)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Boundaries: bs,
		Population: pop,
		Joined:     Join(bs.Records, pop),
		config:     cfg,
	}
	if d.states, err = Dissolve(d.Joined); err != nil {
		return nil, fmt.Errorf("building state layer: %w", err)
	}

	r := d.Report()
	if len(r.StatesWithoutPopulation) > 0 {
		log.Printf("warning: %d states have no population row: %v", len(r.StatesWithoutPopulation), r.StatesWithoutPopulation)
	}
	if len(r.DuplicateDistricts) > 0 {
		log.Printf("warning: %d districts appear more than once and cannot be selected: %v", len(r.DuplicateDistricts), r.DuplicateDistricts)
	}
	return d, nil
}

// Config returns a copy of the configuration the Dashboard was built with.
func (d *Dashboard) Config() Config {
	return *d.config
}

// States returns the sorted state names offered for selection.
func (d *Dashboard) States() []string {
	return d.Boundaries.States
}

// Districts returns the sorted district names offered for state.
func (d *Dashboard) Districts(state string) []string {
	return d.Boundaries.Districts[state]
}

// StateLayer returns the dissolved state records, sorted by name.
func (d *Dashboard) StateLayer() []JoinedRecord {
	return d.states
}

// Normalize maps sel onto a selection the controls can offer: an unknown state
// becomes the first state, and a district not offered for the state becomes the
// state's first district.
func (d *Dashboard) Normalize(sel Selection) Selection {
	if _, ok := d.Boundaries.Districts[sel.State]; !ok && len(d.Boundaries.States) > 0 {
		sel.State = d.Boundaries.States[0]
	}
	if !d.Boundaries.HasDistrict(sel.State, sel.District) {
		sel.District = ""
		if ds := d.Boundaries.Districts[sel.State]; len(ds) > 0 {
			sel.District = ds[0]
		}
	}
	return sel
}

// Select resolves sel against the loaded data. It behaves like Resolve but
// reuses the state layer dissolved at load time.
func (d *Dashboard) Select(sel Selection) (*SelectionView, error) {
	return resolve(d.Joined, d.states, sel)
}

// Breakdown returns the population hierarchy for state.
func (d *Dashboard) Breakdown(state string) (*Hierarchy, error) {
	return Breakdown(d.Population, state)
}
