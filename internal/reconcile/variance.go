package reconcile

import (
	"slices"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/survey"
)

// VendorNotStarted marks a BOQ row without field records.
const VendorNotStarted = "Not Started"

// VarianceRow compares one BOQ row with its field records.
type VarianceRow struct {
	Feeder      string   `json:"feeder"`
	DTName      string   `json:"dt_name"`
	Vendor      string   `json:"vendor"`
	BOQTotal    int      `json:"boq_total"`
	ActualTotal int      `json:"actual_total"`
	BOQGood     int      `json:"boq_good"`
	ActualGood  int      `json:"actual_good"`
	BOQBad      int      `json:"boq_bad"`
	ActualBad   int      `json:"actual_bad"`
	Variance    float64  `json:"variance_pct"`
	Users       []string `json:"users"`
}

// VarianceFor is (actual - boq) / boq in percent, 0 without a target.
func VarianceFor(actual, boq int) float64 {
	if boq <= 0 {
		return 0
	}
	return float64(actual-boq) / float64(boq) * 100
}

type fieldGroup struct {
	vendor           string
	total, good, bad int
	users            []string
	seen             map[string]bool
}

// Variance is the BOQ-anchored join: every BOQ row within the selected feeder
// and DT yields one row, whatever the other filters are. Field-side values
// default to zero with vendor Not Started.
func Variance(filtered []survey.FieldRecord, boq []survey.BOQRecord, st filter.State) []VarianceRow {
	groups := make(map[string]*fieldGroup)
	for _, r := range filtered {
		key := Key(r.Feeder, r.DTName)
		g, ok := groups[key]
		if !ok {
			g = &fieldGroup{vendor: r.VendorName, seen: make(map[string]bool)}
			groups[key] = g
		}
		g.total++
		if r.IsGood() {
			g.good++
		} else {
			g.bad++
		}
		if r.User != "" && !g.seen[r.User] {
			g.seen[r.User] = true
			g.users = append(g.users, r.User)
		}
	}

	out := []VarianceRow{}
	for _, b := range boq {
		if !filter.IsAll(st.Feeder) && b.FeederName != st.Feeder {
			continue
		}
		if !filter.IsAll(st.DT) && b.DTName != st.DT {
			continue
		}

		row := VarianceRow{
			Feeder:   b.FeederName,
			DTName:   b.DTName,
			Vendor:   VendorNotStarted,
			BOQTotal: b.PolesTotal,
			BOQGood:  b.Good,
			BOQBad:   b.Bad,
			Users:    []string{},
		}
		if g, ok := groups[Key(b.FeederName, b.DTName)]; ok {
			row.Vendor = orDefault(g.vendor, Placeholder)
			row.ActualTotal = g.total
			row.ActualGood = g.good
			row.ActualBad = g.bad
			row.Users = slices.Clone(g.users)
		}
		row.Variance = VarianceFor(row.ActualTotal, row.BOQTotal)
		out = append(out, row)
	}
	return out
}

// FeederTarget is the summed target and actual of one feeder.
type FeederTarget struct {
	Feeder string `json:"feeder"`
	BOQ    int    `json:"boq"`
	Actual int    `json:"actual"`
}

// FeederTargets sums variance rows per feeder and returns the n largest targets.
func FeederTargets(rows []VarianceRow, n int) []FeederTarget {
	index := make(map[string]int)
	var out []FeederTarget
	for _, r := range rows {
		feeder := orDefault(r.Feeder, "Unknown")
		i, ok := index[feeder]
		if !ok {
			i = len(out)
			index[feeder] = i
			out = append(out, FeederTarget{Feeder: feeder})
		}
		out[i].BOQ += r.BOQTotal
		out[i].Actual += r.ActualTotal
	}

	slices.SortStableFunc(out, func(a, b FeederTarget) int { return b.BOQ - a.BOQ })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopDTsByTarget returns the n variance rows with the largest BOQ totals.
func TopDTsByTarget(rows []VarianceRow, n int) []VarianceRow {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b VarianceRow) int { return b.BOQTotal - a.BOQTotal })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
