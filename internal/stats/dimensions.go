package stats

import (
	"fmt"
	"strings"

	"idb-monitor/internal/survey"
)

const (
	unknownKey    = "Unknown"
	unassignedKey = "Unassigned"
)

func keyOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// ByVendor counts records per vendor label.
func ByVendor(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.VendorName, unassignedKey) })
}

// ByUser counts records per user id.
func ByUser(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.User, unknownKey) })
}

// ByDate counts records per date prefix.
func ByDate(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.Date(), unknownKey) })
}

// ByFeeder counts records per feeder.
func ByFeeder(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.Feeder, unknownKey) })
}

// ByDT counts records per distribution transformer.
func ByDT(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.DTName, unknownKey) })
}

// ByBusinessUnit counts records per business unit.
func ByBusinessUnit(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.BusinessUnit, unknownKey) })
}

// ByUndertaking counts records per undertaking.
func ByUndertaking(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.Undertaking, unknownKey) })
}

// ByPoleType counts records per "Type of Pole" value.
func ByPoleType(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.PoleType, unknownKey) })
}

// ByMaterial buckets records as Concrete, Wood or Unknown. Concrete wins when both match.
func ByMaterial(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string {
		switch {
		case r.IsConcrete():
			return "Concrete"
		case r.IsWooden():
			return "Wood"
		default:
			return unknownKey
		}
	})
}

// ByIssue counts records per issue classification.
func ByIssue(records []survey.FieldRecord) Tally {
	return CountBy(records, func(r survey.FieldRecord) string { return keyOr(r.IssueType, unknownKey) })
}

var breakdowns = map[string]func([]survey.FieldRecord) Tally{
	"vendor":        ByVendor,
	"user":          ByUser,
	"date":          ByDate,
	"feeder":        ByFeeder,
	"dt":            ByDT,
	"business_unit": ByBusinessUnit,
	"undertaking":   ByUndertaking,
	"pole_type":     ByPoleType,
	"material":      ByMaterial,
	"issue":         ByIssue,
}

// BreakdownDimensions lists the names accepted by Breakdown.
func BreakdownDimensions() []string {
	return []string{"vendor", "user", "date", "feeder", "dt", "business_unit", "undertaking", "pole_type", "material", "issue"}
}

// Breakdown tallies records along a named dimension.
func Breakdown(records []survey.FieldRecord, dimension string) (Tally, error) {
	fn, ok := breakdowns[strings.ToLower(strings.TrimSpace(dimension))]
	if !ok {
		return nil, fmt.Errorf("unknown breakdown dimension %q", dimension)
	}
	return fn(records), nil
}

// TopFeeders returns the n feeders with the most records, smallest first.
func TopFeeders(records []survey.FieldRecord, n int) Tally {
	ranked := Rank(ByFeeder(records), Ascending)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[len(ranked)-n:]
	}
	return ranked
}

// PoleTypes is the pole-type distribution in first-seen order.
func PoleTypes(records []survey.FieldRecord) Tally {
	return ByPoleType(records)
}

func distinctCount(records []survey.FieldRecord, key func(survey.FieldRecord) string) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if k := key(r); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
