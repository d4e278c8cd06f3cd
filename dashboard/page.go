package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/andreiashu/geodash"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// Page is everything the dashboard template renders for one selection.
type Page struct {
	Title     string
	States    []string
	Districts []string
	Selection geodash.Selection

	StateFigure    template.JS
	DistrictFigure template.JS
	SunburstFigure template.JS // empty when BreakdownError is set
	BreakdownError string

	Summary Summary
	Error   string // selection failure; figures are empty
}

// Summary describes the selected regions in the "What you selected" panel.
type Summary struct {
	State           string
	District        string
	StateAreaKm2    string
	DistrictAreaKm2 string
	StateGeohash    string
	DistrictGeohash string
}

// BuildPage resolves sel against d and renders its figures. A selection that
// does not resolve returns the *geodash.SelectionError together with a page
// carrying the controls and the error message.
func BuildPage(d *geodash.Dashboard, sel geodash.Selection) (*Page, error) {
	p := &Page{
		Title:     "Map Visualization Dashboard",
		States:    d.States(),
		Districts: d.Districts(sel.State),
		Selection: sel,
	}

	view, err := d.Select(sel)
	if err != nil {
		p.Error = err.Error()
		return p, err
	}

	if p.StateFigure, err = marshalFigure(StateFigure(view)); err != nil {
		return nil, err
	}
	if p.DistrictFigure, err = marshalFigure(DistrictFigure(view)); err != nil {
		return nil, err
	}

	h, err := d.Breakdown(sel.State)
	if err != nil {
		p.BreakdownError = err.Error()
	} else if p.SunburstFigure, err = marshalFigure(SunburstFigure(h)); err != nil {
		return nil, err
	}

	p.Summary = Summary{
		State:           sel.State,
		District:        sel.District,
		StateAreaKm2:    formatArea(geodash.AreaKm2(view.SelectedStateOutline.Geometry)),
		DistrictAreaKm2: formatArea(geodash.AreaKm2(view.SelectedDistrict.Geometry)),
		StateGeohash:    geodash.CentreGeohash(view.SelectedStateOutline.Geometry),
		DistrictGeohash: geodash.CentreGeohash(view.SelectedDistrict.Geometry),
	}
	return p, nil
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return pageTemplate.ExecuteTemplate(w, "index.html.tmpl", p)
}

// marshalFigure encodes f for inclusion in a script element. encoding/json
// escapes <, > and &, so the output cannot close the element.
func marshalFigure(f Figure) (template.JS, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encoding figure: %w", err)
	}
	return template.JS(b), nil
}

func formatArea(km2 float64) string {
	return geodash.FormatCount(int64(km2+0.5)) + " km²"
}
