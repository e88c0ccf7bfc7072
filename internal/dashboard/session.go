package dashboard

import (
	"fmt"
	"slices"
	"time"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/reconcile"
	"idb-monitor/internal/stats"
	"idb-monitor/internal/survey"
)

// ViewMode selects between field-only figures and BOQ comparison.
type ViewMode string

const (
	ViewField ViewMode = "field"
	ViewBOQ   ViewMode = "boq"
)

// DefaultPageSize is the reconciliation table page size.
const DefaultPageSize = 25

// Session is the state of one dashboard consumer: the dataset it reads, the
// filter selections with their options, the table search and page, and the
// view mode. Every derived view is recomputed from the full dataset on demand.
// A Session is not safe for concurrent use.
type Session struct {
	dataset  *survey.Dataset
	state    filter.State
	options  filter.Options
	search   string
	page     int
	pageSize int
	mode     ViewMode
	now      func() time.Time
}

// NewSession starts a session over ds with every filter at All.
func NewSession(ds *survey.Dataset, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	s := &Session{pageSize: pageSize, now: time.Now}
	s.SetDataset(ds)
	s.Reset()
	return s
}

// SetDataset swaps in a refreshed dataset, keeping the selections that are still valid.
func (s *Session) SetDataset(ds *survey.Dataset) {
	if ds == nil {
		ds = &survey.Dataset{}
	}
	s.dataset = ds
	s.state, s.options = filter.Resolve(ds.Field, s.state)
}

// Dataset returns the dataset the session reads.
func (s *Session) Dataset() *survey.Dataset { return s.dataset }

// State returns the current selections.
func (s *Session) State() filter.State { return s.state }

// Options returns the valid values of each dimension.
func (s *Session) Options() filter.Options { return s.options }

// Search returns the table search text.
func (s *Session) Search() string { return s.search }

// ViewMode returns the current view mode.
func (s *Session) ViewMode() ViewMode { return s.mode }

// Reset restores the initial state: field view, no search, page 1 and every filter at All.
func (s *Session) Reset() {
	s.mode = ViewField
	s.search = ""
	s.page = 1
	s.state = filter.NewState()
	s.options = filter.Populate(s.dataset.Field)
}

// SetFilter selects value on dim and runs the cascade that dimension triggers.
// A value that is not currently offered is rejected.
func (s *Session) SetFilter(dim filter.Dimension, value string) error {
	st, err := s.state.With(dim, value)
	if err != nil {
		return err
	}
	if v := st.Get(dim); !filter.IsAll(v) && !s.offered(dim, v) {
		return fmt.Errorf("%q is not an available %s option", v, dim)
	}

	records := s.dataset.Field
	switch dim {
	case filter.DimVendor:
		st, s.options = filter.OnVendorChange(records, st, s.options)
	case filter.DimFeeder:
		st, s.options = filter.OnFeederChange(records, st, s.options)
	case filter.DimDT:
		st, s.options = filter.OnDTChange(records, st, s.options)
	}

	s.state = st
	s.page = 1
	return nil
}

func (s *Session) offered(dim filter.Dimension, v string) bool {
	o := s.options
	switch dim {
	case filter.DimVendor:
		return slices.Contains(o.Vendors, v)
	case filter.DimBusinessUnit:
		return slices.Contains(o.BusinessUnits, v)
	case filter.DimUndertaking:
		return slices.Contains(o.Undertakings, v)
	case filter.DimUser:
		return slices.ContainsFunc(o.Users, func(u filter.UserOption) bool { return u.ID == v })
	case filter.DimDT:
		return slices.Contains(o.DTs, v)
	case filter.DimUpriser:
		return slices.Contains(o.Uprisers, v)
	case filter.DimFeeder:
		return slices.Contains(o.Feeders, v)
	case filter.DimMaterial:
		return slices.Contains(o.Materials, v)
	case filter.DimDate:
		return slices.Contains(o.Dates, v)
	default:
		return false
	}
}

// SetState replaces every selection at once, dropping the ones that are not
// currently valid, and recomputes the options.
func (s *Session) SetState(st filter.State) {
	s.state, s.options = filter.Resolve(s.dataset.Field, st)
	s.page = 1
}

// SetSearch sets the table search text and returns to the first page.
func (s *Session) SetSearch(q string) {
	s.search = q
	s.page = 1
}

// SetPage moves the table cursor. Out-of-range pages are clamped when the table is built.
func (s *Session) SetPage(page int) {
	s.page = page
}

// SetViewMode switches between field and BOQ view.
func (s *Session) SetViewMode(mode ViewMode) error {
	switch mode {
	case ViewField, ViewBOQ:
		s.mode = mode
		return nil
	default:
		return fmt.Errorf("unknown view mode %q", mode)
	}
}

// Filtered applies the selections to the full dataset.
func (s *Session) Filtered() []survey.FieldRecord {
	return filter.Apply(s.dataset.Field, s.state)
}

// Reconciliation joins the filtered records with the BOQ.
func (s *Session) Reconciliation() []reconcile.Row {
	return reconcile.Build(s.Filtered(), s.dataset.BOQ, s.state)
}

// ExportRows is the searched reconciliation view used by exports.
func (s *Session) ExportRows() []reconcile.Row {
	return reconcile.Search(s.Reconciliation(), s.search)
}

// Table is one page of the searched reconciliation view.
type Table struct {
	Rows      []reconcile.Row `json:"rows"`
	Page      reconcile.Page  `json:"page"`
	Search    string          `json:"search,omitempty"`
	TotalRows int             `json:"total_rows"`
}

// Table builds the current page. The page cursor is clamped into range.
func (s *Session) Table() Table {
	all := s.Reconciliation()
	searched := reconcile.Search(all, s.search)
	p := reconcile.Paginate(len(searched), s.page, s.pageSize)
	s.page = p.Page
	return Table{
		Rows:      reconcile.Slice(searched, p),
		Page:      p,
		Search:    s.search,
		TotalRows: len(all),
	}
}

// Suggestions completes the current search text.
func (s *Session) Suggestions(q string) []string {
	return reconcile.Suggestions(s.Reconciliation(), q)
}

// Variance is the BOQ-anchored comparison under the current selections.
func (s *Session) Variance() []reconcile.VarianceRow {
	return reconcile.Variance(s.Filtered(), s.dataset.BOQ, s.state)
}

// KPIs computes the card row; targets are attached in BOQ view.
func (s *Session) KPIs() stats.KPISet {
	return stats.KPIs(s.Filtered(), s.dataset.BOQ, s.mode == ViewBOQ)
}

// Recommendations assesses vendors over the full dataset, independent of filters.
func (s *Session) Recommendations() []stats.VendorReport {
	return stats.Recommendations(s.dataset.Field, s.now())
}

// Overview computes the headline views of the current selections.
func (s *Session) Overview() Overview {
	return BuildOverview(s.dataset, s.state, s.mode == ViewBOQ)
}
