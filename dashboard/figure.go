// Package dashboard renders geodash selections as Plotly figures on a single
// server-rendered HTML page.
package dashboard

import (
	"github.com/paulmach/orb/geojson"

	"github.com/andreiashu/geodash"
)

// Highlight colours.
const (
	colorBase     = "lightgrey"
	colorState    = "#FFA500"
	colorDistrict = "#008080"
	colorClear    = "rgba(0,0,0,0)"
)

// Figure is a Plotly figure document.
type Figure struct {
	Data   []any  `json:"data"`
	Layout Layout `json:"layout"`
}

// Layout is the subset of Plotly layout attributes the dashboard sets.
type Layout struct {
	Geo    *Geo   `json:"geo,omitempty"`
	Margin Margin `json:"margin"`
}

// Geo frames the map on the drawn locations and hides the base map.
type Geo struct {
	FitBounds string `json:"fitbounds"`
	Visible   bool   `json:"visible"`
}

type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}

// Choropleth is a Plotly choropleth trace over an inline GeoJSON collection.
// Locations are feature ids.
type Choropleth struct {
	Type          string                     `json:"type"`
	GeoJSON       *geojson.FeatureCollection `json:"geojson"`
	Locations     []int                      `json:"locations"`
	Z             []int                      `json:"z"`
	Colorscale    [][2]any                   `json:"colorscale"`
	ShowScale     bool                       `json:"showscale"`
	Marker        Marker                     `json:"marker"`
	HoverInfo     string                     `json:"hoverinfo,omitempty"`
	HoverTemplate string                     `json:"hovertemplate,omitempty"`
}

type Marker struct {
	Line Line `json:"line"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width,omitempty"`
}

// Sunburst is a Plotly sunburst trace coloured by value.
type Sunburst struct {
	Type    string         `json:"type"`
	Labels  []string       `json:"labels"`
	Parents []string       `json:"parents"`
	Values  []int64        `json:"values"`
	Marker  SunburstMarker `json:"marker"`
}

type SunburstMarker struct {
	Colors     []int64 `json:"colors"`
	Colorscale string  `json:"colorscale"`
	ShowScale  bool    `json:"showscale"`
}

// layer is one choropleth trace: the records to draw and how to draw them.
type layer struct {
	records   []geodash.JoinedRecord
	z         int
	color     string
	lineColor string
	lineWidth float64
	hover     string // hovertemplate; empty skips hover
}

func (l layer) trace() Choropleth {
	fc, ids := featureCollection(l.records)
	z := make([]int, len(ids))
	for i := range z {
		z[i] = l.z
	}
	t := Choropleth{
		Type:          "choropleth",
		GeoJSON:       fc,
		Locations:     ids,
		Z:             z,
		Colorscale:    [][2]any{{0, l.color}, {1, l.color}},
		Marker:        Marker{Line: Line{Color: l.lineColor, Width: l.lineWidth}},
		HoverTemplate: l.hover,
	}
	if l.hover == "" {
		t.HoverInfo = "skip"
	}
	return t
}

// featureCollection encodes records as GeoJSON features with ids 0..n-1.
func featureCollection(records []geodash.JoinedRecord) (*geojson.FeatureCollection, []int) {
	fc := geojson.NewFeatureCollection()
	ids := make([]int, len(records))
	for i, r := range records {
		f := geojson.NewFeature(r.Geometry)
		f.ID = i
		f.Properties["st_nm"] = r.StateName
		if r.DistrictName != "" {
			f.Properties["district"] = r.DistrictName
		}
		fc.Append(f)
		ids[i] = i
	}
	return fc, ids
}

func mapLayout() Layout {
	return Layout{
		Geo: &Geo{FitBounds: "locations", Visible: false},
	}
}

// StateFigure draws every state in grey with the selected state highlighted
// and carrying its population hover label.
func StateFigure(v *geodash.SelectionView) Figure {
	base := layer{records: v.AllStates, z: 0, color: colorBase, lineColor: "black", lineWidth: 0.5}
	selected := layer{
		records:   []geodash.JoinedRecord{v.SelectedStateOutline},
		z:         1,
		color:     colorState,
		lineColor: "black",
		lineWidth: 2,
		hover:     v.SelectedStateOutline.HoverLabel + "<extra></extra>",
	}
	return Figure{
		Data:   []any{base.trace(), selected.trace()},
		Layout: mapLayout(),
	}
}

// DistrictFigure draws the districts of the selected state in grey, the
// selected district highlighted, and the state's outline on top.
func DistrictFigure(v *geodash.SelectionView) Figure {
	base := layer{records: v.AllDistrictsInState, z: 0, color: colorBase, lineColor: "white"}
	selected := layer{
		records:   []geodash.JoinedRecord{v.SelectedDistrict},
		z:         1,
		color:     colorDistrict,
		lineColor: "black",
		hover:     "<b>" + v.SelectedDistrict.DistrictName + "</b><extra></extra>",
	}
	outline := layer{records: v.AllDistrictsInState, z: 0, color: colorClear, lineColor: "black", lineWidth: 2}
	return Figure{
		Data:   []any{base.trace(), selected.trace(), outline.trace()},
		Layout: mapLayout(),
	}
}

// SunburstFigure draws the state -> Male/Female population hierarchy.
func SunburstFigure(h *geodash.Hierarchy) Figure {
	return Figure{
		Data: []any{Sunburst{
			Type:    "sunburst",
			Labels:  h.Labels,
			Parents: h.Parents,
			Values:  h.Values,
			Marker: SunburstMarker{
				Colors:     h.Values,
				Colorscale: "Plasma",
				ShowScale:  true,
			},
		}},
	}
}
