package filter

import (
	"strconv"
	"strings"

	"idb-monitor/internal/survey"
)

// Matches evaluates the conjunctive predicate of st against one record.
func Matches(r survey.FieldRecord, st State) bool {
	return equal(st.Vendor, r.VendorName) &&
		equal(st.BusinessUnit, r.BusinessUnit) &&
		equal(st.Undertaking, r.Undertaking) &&
		equal(st.User, r.User) &&
		equal(st.DT, r.DTName) &&
		upriserEqual(st.Upriser, r.UpriserNo) &&
		equal(st.Feeder, r.Feeder) &&
		materialMatches(st.Material, r) &&
		dateMatches(st.Date, r)
}

// Apply returns the records of the full dataset that match st. An all-wildcard
// state returns the dataset itself.
func Apply(records []survey.FieldRecord, st State) []survey.FieldRecord {
	if st.IsWildcard() {
		return records
	}

	out := make([]survey.FieldRecord, 0, len(records)/4)
	for _, r := range records {
		if Matches(r, st) {
			out = append(out, r)
		}
	}
	return out
}

func equal(selected, value string) bool {
	return IsAll(selected) || selected == value
}

func upriserEqual(selected, value string) bool {
	if IsAll(selected) || selected == value {
		return true
	}
	a, errA := strconv.ParseFloat(strings.TrimSpace(selected), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return errA == nil && errB == nil && a == b
}

func dateMatches(selected string, r survey.FieldRecord) bool {
	if IsAll(selected) {
		return true
	}
	date := r.Date()
	return date != "" && strings.HasPrefix(date, selected)
}

func materialMatches(selected string, r survey.FieldRecord) bool {
	switch {
	case IsAll(selected):
		return true
	case selected == MaterialConcrete:
		return r.IsConcrete()
	case selected == MaterialWood:
		return r.IsWooden()
	default:
		return false
	}
}
