package filter

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"idb-monitor/internal/survey"
)

// UserOption is a user id with its display label.
type UserOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options are the valid values of each dimension given upstream selections.
type Options struct {
	Vendors       []string     `json:"vendors"`
	BusinessUnits []string     `json:"business_units"`
	Undertakings  []string     `json:"undertakings"`
	Users         []UserOption `json:"users"`
	DTs           []string     `json:"dts"`
	Uprisers      []string     `json:"uprisers"`
	Feeders       []string     `json:"feeders"`
	Dates         []string     `json:"dates"`
	Materials     []string     `json:"materials"`
}

// Populate computes the initial options from the full dataset.
func Populate(records []survey.FieldRecord) Options {
	opts := dependentOptions(records)
	opts.Vendors = distinctSorted(records, func(r survey.FieldRecord) string { return r.VendorName })
	opts.Materials = Materials()
	return opts
}

// OnVendorChange recomputes every dependent option list from the vendor subset
// and resets the dependent selections to All.
func OnVendorChange(records []survey.FieldRecord, st State, opts Options) (State, Options) {
	st = st.Normalized()

	dep := dependentOptions(vendorSubset(records, st.Vendor))
	dep.Vendors = opts.Vendors
	dep.Materials = opts.Materials
	if dep.Materials == nil {
		dep.Materials = Materials()
	}

	st.BusinessUnit = All
	st.Undertaking = All
	st.User = All
	st.DT = All
	st.Upriser = All
	st.Feeder = All
	st.Date = All
	return st, dep
}

// OnFeederChange recomputes DTs from the vendor and feeder subset, keeps the DT
// selection when it is still offered and cascades into the uprisers.
func OnFeederChange(records []survey.FieldRecord, st State, opts Options) (State, Options) {
	st = st.Normalized()

	scope := vendorSubset(records, st.Vendor)
	if !IsAll(st.Feeder) {
		scope = subset(scope, func(r survey.FieldRecord) bool { return r.Feeder == st.Feeder })
	}

	opts.DTs = distinctSorted(scope, func(r survey.FieldRecord) string { return r.DTName })
	if !slices.Contains(opts.DTs, st.DT) {
		st.DT = All
	}
	return OnDTChange(records, st, opts)
}

// OnDTChange recomputes uprisers from the vendor subset restricted by DT,
// or by feeder when no DT is selected.
func OnDTChange(records []survey.FieldRecord, st State, opts Options) (State, Options) {
	st = st.Normalized()

	scope := vendorSubset(records, st.Vendor)
	switch {
	case !IsAll(st.DT):
		scope = subset(scope, func(r survey.FieldRecord) bool { return r.DTName == st.DT })
	case !IsAll(st.Feeder):
		scope = subset(scope, func(r survey.FieldRecord) bool { return r.Feeder == st.Feeder })
	}

	opts.Uprisers = sortedUprisers(scope)
	if !slices.Contains(opts.Uprisers, st.Upriser) {
		st.Upriser = All
	}
	return st, opts
}

// Resolve computes every option list for the upstream selections in st and
// drops each selection that is not among its options back to All. It is the
// stateless form of the cascade: Resolve(Resolve(st)) == Resolve(st).
func Resolve(records []survey.FieldRecord, st State) (State, Options) {
	st = st.Normalized()

	vendors := distinctSorted(records, func(r survey.FieldRecord) string { return r.VendorName })
	if !slices.Contains(vendors, st.Vendor) {
		st.Vendor = All
	}

	opts := dependentOptions(vendorSubset(records, st.Vendor))
	opts.Vendors = vendors
	opts.Materials = Materials()

	keep := func(v *string, offered []string) {
		if !slices.Contains(offered, *v) {
			*v = All
		}
	}
	keep(&st.BusinessUnit, opts.BusinessUnits)
	keep(&st.Undertaking, opts.Undertakings)
	keep(&st.Feeder, opts.Feeders)
	keep(&st.Date, opts.Dates)
	keep(&st.Material, opts.Materials)
	if !slices.ContainsFunc(opts.Users, func(u UserOption) bool { return u.ID == st.User }) {
		st.User = All
	}

	return OnFeederChange(records, st, opts)
}

func dependentOptions(records []survey.FieldRecord) Options {
	return Options{
		BusinessUnits: distinctSorted(records, func(r survey.FieldRecord) string { return r.BusinessUnit }),
		Undertakings:  distinctSorted(records, func(r survey.FieldRecord) string { return r.Undertaking }),
		Users:         sortedUsers(records),
		DTs:           distinctSorted(records, func(r survey.FieldRecord) string { return r.DTName }),
		Uprisers:      sortedUprisers(records),
		Feeders:       distinctSorted(records, func(r survey.FieldRecord) string { return r.Feeder }),
		Dates:         sortedDates(records),
	}
}

func vendorSubset(records []survey.FieldRecord, vendor string) []survey.FieldRecord {
	if IsAll(vendor) {
		return records
	}
	return subset(records, func(r survey.FieldRecord) bool { return r.VendorName == vendor })
}

func subset(records []survey.FieldRecord, keep func(survey.FieldRecord) bool) []survey.FieldRecord {
	var out []survey.FieldRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func distinct(records []survey.FieldRecord, key func(survey.FieldRecord) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		v := key(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func distinctSorted(records []survey.FieldRecord, key func(survey.FieldRecord) string) []string {
	out := distinct(records, key)
	slices.Sort(out)
	return out
}

// sortedUsers orders users by display name using English collation.
func sortedUsers(records []survey.FieldRecord) []UserOption {
	ids := distinct(records, func(r survey.FieldRecord) string { return r.User })
	users := make([]UserOption, len(ids))
	for i, id := range ids {
		users[i] = UserOption{ID: id, Name: survey.DisplayName(id)}
	}

	col := collate.New(language.English)
	slices.SortStableFunc(users, func(a, b UserOption) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return users
}

// sortedUprisers orders uprisers numerically; non-numeric values follow in string order.
func sortedUprisers(records []survey.FieldRecord) []string {
	out := distinct(records, func(r survey.FieldRecord) string { return r.UpriserNo })
	slices.SortStableFunc(out, compareUpriser)
	return out
}

func compareUpriser(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// sortedDates orders date prefixes most recent first.
func sortedDates(records []survey.FieldRecord) []string {
	out := distinct(records, func(r survey.FieldRecord) string { return r.Date() })
	slices.SortStableFunc(out, func(a, b string) int {
		_, okA := survey.ParseDate(a)
		_, okB := survey.ParseDate(b)
		if okA && okB {
			return survey.CompareDates(b, a)
		}
		return survey.CompareDates(a, b)
	})
	return out
}
