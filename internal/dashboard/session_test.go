package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/survey"
)

func sampleDataset() *survey.Dataset {
	field := []survey.FieldRecord{
		{User: "aosimen", DTName: "DT-A", Feeder: "F1", BusinessUnit: "Shomolu", Undertaking: "Bariga", Timestamp: "2026-01-30 10:00", Material: "Concrete", Latitude: "6.5", Longitude: "3.3", PoleID: "P1"},
		{User: "aosimen", DTName: "DT-A", Feeder: "F1", BusinessUnit: "Shomolu", Undertaking: "Bariga", Timestamp: "2026-01-31 10:00", Material: "Wooden"},
		{User: "sbolaji", DTName: "DT-B", Feeder: "F2", BusinessUnit: "Ikeja", Undertaking: "Ojodu", Timestamp: "2026-01-31 11:00", Material: "Concrete", Latitude: "6.6", Longitude: "3.4"},
	}
	boq := []survey.BOQRecord{
		{FeederName: "F1", DTName: "DT-A", PolesTotal: 4},
		{FeederName: "F2", DTName: "DT-B", PolesTotal: 2},
		{FeederName: "F3", DTName: "DT-C", PolesTotal: 5},
	}
	return survey.NewDataset(field, boq, survey.FixedClassifier(survey.IssueGood))
}

func TestNewSession_StartsUnfiltered(t *testing.T) {
	s := NewSession(sampleDataset(), 0)

	if !s.State().IsWildcard() {
		t.Errorf("initial state = %+v, want all wildcards", s.State())
	}
	if s.ViewMode() != ViewField {
		t.Errorf("ViewMode() = %q, want %q", s.ViewMode(), ViewField)
	}
	if got := len(s.Filtered()); got != 3 {
		t.Errorf("Filtered() = %d records, want 3", got)
	}
	// Unfiltered reconciliation includes the BOQ-only DT.
	if got := len(s.Reconciliation()); got != 3 {
		t.Errorf("Reconciliation() = %d rows, want 3", got)
	}
	if DefaultPageSize != 25 {
		t.Errorf("DefaultPageSize = %d, want 25", DefaultPageSize)
	}
	if got := s.Table().Page.PageSize; got != 25 {
		t.Errorf("Table().Page.PageSize = %d, want 25", got)
	}
}

func TestSession_SetFilter(t *testing.T) {
	s := NewSession(sampleDataset(), 10)

	if err := s.SetFilter(filter.DimFeeder, "F1"); err != nil {
		t.Fatalf("SetFilter(feeder) error: %v", err)
	}
	if got := s.Options().DTs; len(got) != 1 || got[0] != "DT-A" {
		t.Errorf("DT options after feeder change = %v, want [DT-A]", got)
	}
	if got := len(s.Filtered()); got != 2 {
		t.Errorf("Filtered() = %d, want 2", got)
	}

	if err := s.SetFilter(filter.DimFeeder, "F9"); err == nil {
		t.Error("expected error for a value that is not offered")
	}
	if err := s.SetFilter(filter.Dimension("colour"), "red"); err == nil {
		t.Error("expected error for an unknown dimension")
	}
}

func TestSession_VendorChangeResetsDependents(t *testing.T) {
	s := NewSession(sampleDataset(), 10)

	if err := s.SetFilter(filter.DimFeeder, "F1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFilter(filter.DimVendor, survey.VendorJesom); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if st.Feeder != filter.All {
		t.Errorf("feeder = %q, want All after vendor change", st.Feeder)
	}
	if got := s.Options().Feeders; len(got) != 1 || got[0] != "F2" {
		t.Errorf("feeder options = %v, want [F2]", got)
	}
}

func TestSession_FieldFilterDropsBOQOnlyRows(t *testing.T) {
	s := NewSession(sampleDataset(), 10)
	if err := s.SetFilter(filter.DimMaterial, filter.MaterialConcrete); err != nil {
		t.Fatal(err)
	}
	for _, r := range s.Reconciliation() {
		if r.DTName == "DT-C" {
			t.Errorf("BOQ-only row %q must not appear under a material filter", r.Key)
		}
	}
}

func TestSession_TableSearchAndPaging(t *testing.T) {
	s := NewSession(sampleDataset(), 2)

	tbl := s.Table()
	if tbl.Page.TotalPages != 2 || len(tbl.Rows) != 2 {
		t.Fatalf("page 1 = %d rows of %d pages, want 2 of 2", len(tbl.Rows), tbl.Page.TotalPages)
	}

	s.SetPage(99)
	tbl = s.Table()
	if tbl.Page.Page != 2 || len(tbl.Rows) != 1 {
		t.Errorf("clamped page = %d with %d rows, want 2 with 1", tbl.Page.Page, len(tbl.Rows))
	}

	s.SetSearch("dt-b")
	tbl = s.Table()
	if tbl.Page.Page != 1 {
		t.Errorf("search must reset page, got %d", tbl.Page.Page)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0].DTName != "DT-B" {
		t.Errorf("search rows = %+v", tbl.Rows)
	}
	if tbl.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", tbl.TotalRows)
	}
	if got := len(s.ExportRows()); got != 1 {
		t.Errorf("ExportRows() = %d, want the searched view of 1", got)
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession(sampleDataset(), 10)
	_ = s.SetFilter(filter.DimVendor, survey.VendorETC)
	_ = s.SetViewMode(ViewBOQ)
	s.SetSearch("x")
	s.SetPage(3)

	s.Reset()

	if !s.State().IsWildcard() || s.ViewMode() != ViewField || s.Search() != "" {
		t.Errorf("Reset left state=%+v mode=%q search=%q", s.State(), s.ViewMode(), s.Search())
	}
	if got := len(s.Options().Feeders); got != 2 {
		t.Errorf("feeder options after reset = %d, want 2", got)
	}
}

func TestSession_ViewModeTargets(t *testing.T) {
	s := NewSession(sampleDataset(), 10)
	if s.KPIs().Records.Targeted {
		t.Error("field view must not attach targets")
	}
	if err := s.SetViewMode(ViewBOQ); err != nil {
		t.Fatal(err)
	}
	k := s.KPIs()
	if !k.Records.Targeted || k.Records.Target != 11 {
		t.Errorf("BOQ view records card = %+v, want target 11", k.Records)
	}
	if err := s.SetViewMode("map"); err == nil {
		t.Error("expected error for unknown view mode")
	}
}

func TestSession_SetDatasetKeepsValidSelections(t *testing.T) {
	s := NewSession(sampleDataset(), 10)
	_ = s.SetFilter(filter.DimFeeder, "F2")

	next := sampleDataset()
	next.Field = next.Field[:2]
	s.SetDataset(next)

	if s.State().Feeder != filter.All {
		t.Errorf("feeder = %q, want All once F2 disappears", s.State().Feeder)
	}
}

func TestMapPoints(t *testing.T) {
	ds := sampleDataset()
	points := MapPoints(ds.Field, 0)
	if len(points) != 2 {
		t.Fatalf("MapPoints() = %d, want 2 records with coordinates", len(points))
	}
	if points[0].PoleID != "P1" || points[0].Officer != "Osimen Faith" {
		t.Errorf("first point = %+v", points[0])
	}
	if points[1].PoleID != "N/A" {
		t.Errorf("missing pole id = %q, want N/A", points[1].PoleID)
	}
	if got := len(MapPoints(ds.Field, 1)); got != 1 {
		t.Errorf("limit 1 returned %d points", got)
	}
}

func TestHolder_RefreshKeepsPreviousOnError(t *testing.T) {
	calls := 0
	h := NewHolder(func(context.Context) (*survey.Dataset, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("upstream down")
		}
		return sampleDataset(), nil
	})

	if _, err := h.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Current() before load error = %v, want ErrNotLoaded", err)
	}
	if err := h.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	first, _ := h.Current()

	if err := h.Refresh(context.Background()); err == nil {
		t.Error("expected refresh error")
	}
	current, err := h.Current()
	if err != nil || current != first {
		t.Errorf("failed refresh replaced the dataset")
	}
}

func TestBuildOverview(t *testing.T) {
	ds := sampleDataset()
	o := BuildOverview(ds, filter.NewState(), false)
	if o.TotalRecords != 3 || o.FilteredRecords != 3 {
		t.Errorf("record counts = %d/%d", o.TotalRecords, o.FilteredRecords)
	}
	if o.Summary == nil {
		t.Fatal("expected an executive summary for a non-empty view")
	}
	if o.LoadedAt.After(time.Now()) {
		t.Error("LoadedAt in the future")
	}

	st, _ := filter.NewState().With(filter.DimFeeder, "F9")
	o = BuildOverview(ds, st, false)
	if o.FilteredRecords != 0 {
		t.Errorf("FilteredRecords = %d, want 0", o.FilteredRecords)
	}
	if o.Summary == nil || o.Summary.TotalAssets != 3 {
		t.Errorf("summary should cover the whole dataset, got %+v", o.Summary)
	}
}

func TestSession_SetStateDropsInvalidSelections(t *testing.T) {
	s := NewSession(sampleDataset(), 10)
	s.SetPage(2)

	st := filter.NewState()
	st.Vendor = survey.VendorETC
	st.Feeder = "F2"
	st.Material = "Steel"
	s.SetState(st)

	got := s.State()
	if got.Vendor != survey.VendorETC || got.Feeder != filter.All || got.Material != filter.All {
		t.Errorf("SetState() kept invalid selections: %+v", got)
	}
	if tbl := s.Table(); tbl.Page.Page != 1 {
		t.Errorf("page = %d, want 1", tbl.Page.Page)
	}
}
