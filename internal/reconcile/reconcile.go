package reconcile

import (
	"encoding/json"
	"strings"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/survey"
)

// Default labels for missing field values.
const (
	UnknownDT     = "Unknown DT"
	UnknownFeeder = "Unknown Feeder"
	Placeholder   = "-"

	// VendorPending marks a row synthesized from the BOQ alone.
	VendorPending = "Pending"
)

// Row statuses.
const (
	StatusNotStarted     = "Not Started"
	StatusInProgress     = "In Progress"
	StatusNearCompletion = "Near Completion"
	StatusCompleted      = "Completed"
)

// Key is the join key of a feeder and DT: both trimmed and upper-cased, pipe-joined.
func Key(feeder, dt string) string {
	return strings.ToUpper(strings.TrimSpace(feeder)) + "|" + strings.ToUpper(strings.TrimSpace(dt))
}

// Row is the reconciliation of one (feeder, DT) pair.
type Row struct {
	Key          string   `json:"key"`
	DTName       string   `json:"dt_name"`
	Feeder       string   `json:"feeder"`
	BusinessUnit string   `json:"bu"`
	Undertaking  string   `json:"undertaking"`
	Vendor       string   `json:"vendor"`
	Users        []string `json:"users"`
	BOQTotal     int      `json:"boq_total"`
	ActualTotal  int      `json:"actual_total"`
	Concrete     int      `json:"concrete"`
	Wooden       int      `json:"wooden"`
	Synthesized  bool     `json:"synthesized"`
}

// Progress is actual against target in percent, 0 without a target.
func (r Row) Progress() float64 {
	return progress(r.ActualTotal, r.BOQTotal)
}

// Gap is the remaining target, never negative.
func (r Row) Gap() int {
	return max(0, r.BOQTotal-r.ActualTotal)
}

// Status classifies the row's progress.
func (r Row) Status() string {
	return StatusFor(r.ActualTotal, r.BOQTotal)
}

// UserNames maps the contributing users to display names.
func (r Row) UserNames() []string {
	names := make([]string, len(r.Users))
	for i, u := range r.Users {
		names[i] = survey.DisplayName(u)
	}
	return names
}

// MarshalJSON adds the derived progress, gap and status.
func (r Row) MarshalJSON() ([]byte, error) {
	type plain Row
	return json.Marshal(struct {
		plain
		Progress float64 `json:"progress_pct"`
		Gap      int     `json:"gap"`
		Status   string  `json:"status"`
	}{plain(r), r.Progress(), r.Gap(), r.Status()})
}

func progress(actual, boq int) float64 {
	if boq <= 0 {
		return 0
	}
	return float64(actual) / float64(boq) * 100
}

// StatusFor classifies actual against a BOQ target. Near completion starts at
// 90% inclusive; the comparison stays in integers so 9 of 10 lands on it.
func StatusFor(actual, boq int) string {
	switch {
	case actual == 0:
		return StatusNotStarted
	case boq <= 0:
		return StatusInProgress
	case actual >= boq:
		return StatusCompleted
	case actual*10 >= boq*9:
		return StatusNearCompletion
	default:
		return StatusInProgress
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Build joins the filtered field records against the BOQ.
//
// Field rows come first in first-seen order. BOQ rows outside a selected feeder
// or DT are skipped; matching rows add their target. A BOQ row without field
// records is synthesized with vendor Pending only when st carries no field
// attribute filter, since vendor and material are only known from field data.
func Build(filtered []survey.FieldRecord, boq []survey.BOQRecord, st filter.State) []Row {
	var rows []Row
	index := make(map[string]int)
	users := make(map[string]map[string]bool)

	// 1. Field pass
	for _, r := range filtered {
		dt := strings.TrimSpace(orDefault(r.DTName, UnknownDT))
		feeder := strings.TrimSpace(orDefault(r.Feeder, UnknownFeeder))
		key := Key(feeder, dt)

		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			users[key] = make(map[string]bool)
			rows = append(rows, Row{
				Key:          key,
				DTName:       dt,
				Feeder:       feeder,
				BusinessUnit: orDefault(r.BusinessUnit, Placeholder),
				Undertaking:  orDefault(r.Undertaking, Placeholder),
				Vendor:       orDefault(r.VendorName, Placeholder),
				Users:        []string{},
			})
		}

		row := &rows[i]
		row.ActualTotal++
		if r.User != "" && !users[key][r.User] {
			users[key][r.User] = true
			row.Users = append(row.Users, r.User)
		}
		if r.IsConcrete() {
			row.Concrete++
		}
		if r.IsWooden() {
			row.Wooden++
		}
	}

	// 2. BOQ pass
	synthesize := !st.HasFieldAttributeFilter()
	for _, b := range boq {
		dt := strings.TrimSpace(orDefault(b.DTName, UnknownDT))
		feeder := strings.TrimSpace(orDefault(b.FeederName, UnknownFeeder))
		if !filter.IsAll(st.Feeder) && feeder != st.Feeder {
			continue
		}
		if !filter.IsAll(st.DT) && dt != st.DT {
			continue
		}

		key := Key(feeder, dt)
		if i, ok := index[key]; ok {
			rows[i].BOQTotal += b.PolesTotal
			continue
		}
		if !synthesize {
			continue
		}

		index[key] = len(rows)
		rows = append(rows, Row{
			Key:          key,
			DTName:       dt,
			Feeder:       feeder,
			BusinessUnit: Placeholder,
			Undertaking:  Placeholder,
			Vendor:       VendorPending,
			Users:        []string{},
			BOQTotal:     b.PolesTotal,
			Synthesized:  true,
		})
	}

	return rows
}
