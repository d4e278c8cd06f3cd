package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreiashu/geodash"
)

const (
	testBoundaries = "../testdata/boundaries.geojson"
	testPopulation = "../testdata/population.csv"
)

func testDashboard(t *testing.T) *geodash.Dashboard {
	t.Helper()
	d, err := geodash.NewDashboard(
		geodash.WithBoundaryFile(testBoundaries),
		geodash.WithPopulationFile(testPopulation),
		geodash.WithLoader(geodash.NewLoader()),
	)
	require.NoError(t, err)
	return d
}

func testView(t *testing.T) *geodash.SelectionView {
	t.Helper()
	view, err := testDashboard(t).Select(geodash.Selection{State: "Kerala", District: "Kottayam"})
	require.NoError(t, err)
	return view
}

func TestStateFigure(t *testing.T) {
	view := testView(t)
	fig := StateFigure(view)
	require.Len(t, fig.Data, 2)

	base := fig.Data[0].(Choropleth)
	assert.Equal(t, "choropleth", base.Type)
	assert.Len(t, base.Locations, len(view.AllStates))
	assert.Equal(t, [][2]any{{0, colorBase}, {1, colorBase}}, base.Colorscale)
	assert.Equal(t, "skip", base.HoverInfo)
	assert.Empty(t, base.HoverTemplate)

	sel := fig.Data[1].(Choropleth)
	assert.Equal(t, []int{0}, sel.Locations)
	assert.Equal(t, []int{1}, sel.Z)
	assert.Equal(t, colorState, sel.Colorscale[0][1])
	assert.Equal(t, 2.0, sel.Marker.Line.Width)
	assert.Equal(t, "Kerala<br>Total: 33,406,061<br>Male: 16,027,412<br>Female: 17,378,649<extra></extra>", sel.HoverTemplate)
	assert.Empty(t, sel.HoverInfo)

	require.NotNil(t, fig.Layout.Geo)
	assert.Equal(t, "locations", fig.Layout.Geo.FitBounds)
	assert.False(t, fig.Layout.Geo.Visible)
}

func TestDistrictFigure(t *testing.T) {
	view := testView(t)
	fig := DistrictFigure(view)
	require.Len(t, fig.Data, 3)

	base := fig.Data[0].(Choropleth)
	assert.Len(t, base.Locations, 2)
	assert.Equal(t, "white", base.Marker.Line.Color)

	sel := fig.Data[1].(Choropleth)
	assert.Equal(t, colorDistrict, sel.Colorscale[0][1])
	assert.Equal(t, "<b>Kottayam</b><extra></extra>", sel.HoverTemplate)
	require.Len(t, sel.GeoJSON.Features, 1)
	assert.Equal(t, "Kottayam", sel.GeoJSON.Features[0].Properties["district"])

	outline := fig.Data[2].(Choropleth)
	assert.Equal(t, colorClear, outline.Colorscale[0][1])
	assert.Equal(t, 2.0, outline.Marker.Line.Width)
	assert.Equal(t, "skip", outline.HoverInfo)
}

func TestFeatureCollectionIDs(t *testing.T) {
	view := testView(t)
	fc, ids := featureCollection(view.AllStates)
	require.Len(t, fc.Features, len(view.AllStates))
	for i, f := range fc.Features {
		assert.Equal(t, i, f.ID)
		assert.Equal(t, i, ids[i])
		assert.Equal(t, view.AllStates[i].StateName, f.Properties["st_nm"])
		assert.NotContains(t, f.Properties, "district")
	}
}

func TestSunburstFigure(t *testing.T) {
	h := &geodash.Hierarchy{
		Labels:  []string{"Kerala", "Male", "Female"},
		Parents: []string{"", "Kerala", "Kerala"},
		Values:  []int64{3, 1, 2},
	}
	fig := SunburstFigure(h)
	require.Len(t, fig.Data, 1)
	sb := fig.Data[0].(Sunburst)
	assert.Equal(t, "sunburst", sb.Type)
	assert.Equal(t, h.Values, sb.Marker.Colors)
	assert.Equal(t, "Plasma", sb.Marker.Colorscale)
	assert.Nil(t, fig.Layout.Geo)
}

func TestMarshalFigure(t *testing.T) {
	js, err := marshalFigure(StateFigure(testView(t)))
	require.NoError(t, err)
	assert.NotContains(t, string(js), "<br>")
	assert.Contains(t, string(js), `\u003cbr\u003e`)

	var doc struct {
		Data []struct {
			Type      string `json:"type"`
			Locations []int  `json:"locations"`
			GeoJSON   struct {
				Type     string            `json:"type"`
				Features []json.RawMessage `json:"features"`
			} `json:"geojson"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(js), &doc))
	require.Len(t, doc.Data, 2)
	assert.Equal(t, "FeatureCollection", doc.Data[0].GeoJSON.Type)
	assert.Len(t, doc.Data[0].GeoJSON.Features, len(doc.Data[0].Locations))
}
