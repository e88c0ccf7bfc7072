package stats

import (
	"math"
	"time"

	"idb-monitor/internal/survey"
)

const notAvailable = "N/A"

// KeyInsights is the highlights panel over the filtered records.
type KeyInsights struct {
	TopVendor      string  `json:"top_vendor"`
	TopVendorShare float64 `json:"top_vendor_share_pct"`

	// Officer highlights are omitted when a single user is selected.
	ShowOfficers        bool    `json:"show_officers"`
	TopOfficer          string  `json:"top_officer,omitempty"`
	BottomOfficer       string  `json:"bottom_officer,omitempty"`
	BottomOfficerVendor string  `json:"bottom_officer_vendor,omitempty"`
	BottomOfficerShare  float64 `json:"bottom_officer_share_pct,omitempty"`

	HighestUndertaking string `json:"highest_undertaking"`
	LowestUndertaking  string `json:"lowest_undertaking"`

	CoverageFrom string `json:"coverage_from,omitempty"`
	CoverageTo   string `json:"coverage_to,omitempty"`
}

// Coverage renders the date range, or N/A.
func (k KeyInsights) Coverage() string {
	if k.CoverageFrom == "" {
		return notAvailable
	}
	return k.CoverageFrom + " - " + k.CoverageTo
}

// Insights computes the highlights. userSelected hides the officer ranking.
func Insights(records []survey.FieldRecord, userSelected bool) KeyInsights {
	k := KeyInsights{
		TopVendor:          notAvailable,
		TopOfficer:         notAvailable,
		BottomOfficer:      notAvailable,
		HighestUndertaking: notAvailable,
		LowestUndertaking:  notAvailable,
		ShowOfficers:       !userSelected,
	}

	if vendors := Rank(ByVendor(records), Descending); len(vendors) > 0 {
		k.TopVendor = vendors[0].Key
		k.TopVendorShare = math.Round(Percent(vendors[0].Count, len(records)))
	}

	if users := Rank(ByUser(records), Descending); len(users) > 0 {
		top, bottom := users[0], users[len(users)-1]
		k.TopOfficer = survey.DisplayName(top.Key)
		k.BottomOfficer = survey.DisplayName(bottom.Key)
		k.BottomOfficerVendor = unknownKey
		for _, r := range records {
			if keyOr(r.User, unknownKey) == bottom.Key {
				k.BottomOfficerVendor = keyOr(r.VendorName, unknownKey)
				break
			}
		}
		k.BottomOfficerShare = Round1(Percent(bottom.Count, len(records)))
	}
	if userSelected {
		k.TopOfficer, k.BottomOfficer, k.BottomOfficerVendor, k.BottomOfficerShare = "", "", "", 0
	}

	if uts := Rank(ByUndertaking(records), Descending); len(uts) > 0 {
		k.HighestUndertaking = uts[0].Key
		k.LowestUndertaking = uts[len(uts)-1].Key
	}

	var first, last time.Time
	for _, r := range records {
		d, ok := survey.ParseDate(r.Date())
		if !ok {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	if !first.IsZero() {
		k.CoverageFrom = first.Format(time.DateOnly)
		k.CoverageTo = last.Format(time.DateOnly)
	}
	return k
}
