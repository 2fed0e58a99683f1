// Package export writes partition results as CSV and GeoJSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/kilianp07/hexfleet/core/model"
)

// WriteCSV writes the zone allocation to w, one row per assigned cell,
// ordered by vehicle id then cell id.
func WriteCSV(w io.Writer, assignment model.Assignment) error {
	cw := csv.NewWriter(w)
	header := []string{"uav_id", "hex_id", "centroid_x", "centroid_y", "area_m2", "priority", "restricted"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, id := range vehicleIDs(assignment) {
		for _, c := range assignment[id] {
			rec := []string{
				strconv.Itoa(id),
				strconv.Itoa(c.ID),
				strconv.FormatFloat(c.Center.X, 'f', -1, 64),
				strconv.FormatFloat(c.Center.Y, 'f', -1, 64),
				strconv.FormatFloat(c.AreaM2, 'f', -1, 64),
				strconv.Itoa(c.Priority),
				strconv.FormatBool(c.Restricted),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Feature is one GeoJSON feature: a cell polygon tagged with its owning
// vehicle.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry is a GeoJSON polygon geometry.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// FeatureCollection is the root GeoJSON object.
type FeatureCollection struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Features   []Feature      `json:"features"`
}

// WriteGeoJSON writes one feature per assigned cell to w, ordered by vehicle
// id then cell id. runID, when non-empty, is stored as a collection property.
func WriteGeoJSON(w io.Writer, assignment model.Assignment, runID string) error {
	fc := FeatureCollection{Type: "FeatureCollection"}
	if runID != "" {
		fc.Properties = map[string]any{"run_id": runID}
	}
	for _, id := range vehicleIDs(assignment) {
		for _, c := range assignment[id] {
			fc.Features = append(fc.Features, Feature{
				Type: "Feature",
				Properties: map[string]any{
					"uav_id":     id,
					"hex_id":     c.ID,
					"area_m2":    c.AreaM2,
					"priority":   c.Priority,
					"restricted": c.Restricted,
				},
				Geometry: polygonGeometry(c),
			})
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(fc)
}

// polygonGeometry converts a cell outline to a closed GeoJSON ring.
func polygonGeometry(c *model.Cell) Geometry {
	ring := make([][2]float64, 0, len(c.Polygon.Vertices)+1)
	for _, v := range c.Polygon.Vertices {
		ring = append(ring, [2]float64{v.X, v.Y})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return Geometry{Type: "Polygon", Coordinates: [][][2]float64{ring}}
}

func vehicleIDs(assignment model.Assignment) []int {
	ids := make([]int, 0, len(assignment))
	for id := range assignment {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
