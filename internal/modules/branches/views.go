package branches

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/geo"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	panelID   = "branch-panel"
	mapID     = "branch-map"
	mapDataID = "map-data"
)

// Coord is a point as the browser script reads it.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is one location on the map. Lines fill its popup, the first one in bold.
type Marker struct {
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	Lines []string `json:"lines"`
}

// MapData is everything the browser needs to draw the map.
type MapData struct {
	Center    Coord    `json:"center"`
	Locations []Marker `json:"locations"`
	User      *Coord   `json:"user,omitempty"`

	nearby bool
}

// NewMapData centers the map on user when known and on DefaultCenter otherwise.
func NewMapData(locations []bankapi.Location, user *geo.Point) MapData {
	d := MapData{
		Center:    Coord{Lat: DefaultCenter.Lat, Lon: DefaultCenter.Lon},
		Locations: make([]Marker, 0, len(locations)),
	}
	if user != nil {
		d.User = &Coord{Lat: user.Lat, Lon: user.Lon}
		d.Center = *d.User
	}
	for _, l := range locations {
		d.Locations = append(d.Locations, Marker{Lat: l.Latitude, Lon: l.Longitude, Lines: PopupLines(l)})
	}
	return d
}

// Nearby marks the data as the filtered view.
func (d MapData) Nearby() MapData {
	d.nearby = true
	return d
}

// PopupLines is the text shown when a marker is opened.
func PopupLines(l bankapi.Location) []string {
	lines := []string{l.Name, l.Address}
	if l.Hours != "" {
		lines = append(lines, "Hours: "+l.Hours)
	}
	lines = append(lines, "Type: "+typeLabel(l))
	if l.Distance != nil {
		lines = append(lines, fmt.Sprintf("Distance: %.2f km", *l.Distance))
	}
	return lines
}

func typeLabel(l bankapi.Location) string {
	if l.IsBranch() {
		return "Branch"
	}
	return "ATM"
}

// Panel renders the map container, its data and the nearby/all toggles.
func Panel(d MapData, errMsg string) cmp.Node {
	return g.Div(
		g.ID(panelID),
		g.Class("space-y-6"),
		g.Div(
			g.Class("flex justify-between items-center"),
			g.H2(g.Class("text-2xl font-bold text-gray-800"), cmp.Text("Branches & ATMs")),
			g.Div(
				g.Class("flex space-x-4"),
				toggle("/dashboard/bills/nearby", d.User, "Nearby Services", d.nearby, "bg-indigo-600 hover:bg-indigo-700"),
				toggle("/dashboard/bills/all", d.User, "All Services", !d.nearby, "bg-gray-600 hover:bg-gray-700"),
			),
		),
		components.ErrorMessage(errMsg),
		g.Div(
			g.Class("bg-white rounded-lg shadow-md overflow-hidden"),
			g.Div(g.ID(mapID), g.Class("h-[calc(100vh-150px)] w-full")),
		),
		dataScript(d),
		g.Ul(
			g.Class("sr-only"),
			cmp.Map(d.Locations, func(m Marker) cmp.Node {
				return g.Li(cmp.Text(strings.Join(m.Lines, ", ")))
			}),
		),
	)
}

func toggle(path string, user *Coord, label string, active bool, colors string) cmp.Node {
	target := path
	if user != nil {
		target += "?" + url.Values{
			"lat": {strconv.FormatFloat(user.Lat, 'f', -1, 64)},
			"lon": {strconv.FormatFloat(user.Lon, 'f', -1, 64)},
		}.Encode()
	}
	return g.Button(
		g.Type("button"),
		g.Class("flex items-center space-x-2 text-white px-4 py-2 rounded-md "+colors),
		cmp.If(active, cmp.Attr("aria-pressed", "true")),
		hx.Get(target),
		hx.Target("#"+panelID),
		hx.Swap("outerHTML"),
		g.Span(cmp.Text(label)),
	)
}

// dataScript embeds d as JSON. encoding/json escapes <, > and & so the payload cannot
// close the script element. A payload that cannot be encoded fails the render.
func dataScript(d MapData) cmp.Node {
	return g.Script(g.Type("application/json"), g.ID(mapDataID), cmp.NodeFunc(func(w io.Writer) error {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode map data: %w", err)
		}
		_, err = w.Write(payload)
		return err
	}))
}
