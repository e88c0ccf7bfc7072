package dashboard

import "idb-monitor/internal/survey"

// MaxMapPoints caps the number of plotted assets.
const MaxMapPoints = 3000

// MapPoint is one plottable asset.
type MapPoint struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	PoleID  string  `json:"pole_id"`
	DTName  string  `json:"dt_name"`
	Vendor  string  `json:"vendor"`
	Officer string  `json:"officer"`
	Issue   string  `json:"issue"`
}

// MapPoints returns the records with numeric coordinates, at most limit of them.
// A non-positive limit means MaxMapPoints.
func MapPoints(records []survey.FieldRecord, limit int) []MapPoint {
	if limit <= 0 {
		limit = MaxMapPoints
	}

	points := []MapPoint{}
	for _, r := range records {
		if len(points) >= limit {
			break
		}
		lat, lon, ok := r.Coordinates()
		if !ok {
			continue
		}
		points = append(points, MapPoint{
			Lat:     lat,
			Lon:     lon,
			PoleID:  orNA(r.PoleID),
			DTName:  orNA(r.DTName),
			Vendor:  r.VendorName,
			Officer: survey.DisplayName(r.User),
			Issue:   r.IssueType,
		})
	}
	return points
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
