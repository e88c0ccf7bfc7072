package reconcile

import (
	"encoding/json"
	"reflect"
	"testing"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/survey"
)

func field(feeder, dt, user, vendor, material string) survey.FieldRecord {
	return survey.FieldRecord{
		Feeder: feeder, DTName: dt, User: user, VendorName: vendor, Material: material,
		BusinessUnit: "Shomolu", Undertaking: "Bariga", IssueType: survey.IssueGood,
	}
}

func TestKey_Normalization(t *testing.T) {
	if a, b := Key(" Feeder1 ", "dt-A"), Key("FEEDER1", "DT-A"); a != b {
		t.Errorf("Key mismatch: %q vs %q", a, b)
	}
	if got := Key("f", "d"); got != "F|D" {
		t.Errorf("Key() = %q", got)
	}
}

func TestBuild_MergesNormalizedKeys(t *testing.T) {
	filtered := []survey.FieldRecord{
		field(" Feeder1 ", "dt-A", "aosimen", survey.VendorETC, "Concrete"),
		field("FEEDER1", "DT-A", "aayogu", survey.VendorETC, "Wood"),
		field("FEEDER1", "DT-A", "aosimen", survey.VendorETC, ""),
	}
	boq := []survey.BOQRecord{{FeederName: "feeder1 ", DTName: " Dt-a", PolesTotal: 10}}

	rows := Build(filtered, boq, filter.NewState())
	if len(rows) != 1 {
		t.Fatalf("expected a single merged row, got %d: %+v", len(rows), rows)
	}

	r := rows[0]
	if r.ActualTotal != 3 || r.BOQTotal != 10 || r.Concrete != 1 || r.Wooden != 1 {
		t.Errorf("row = %+v", r)
	}
	if r.DTName != "dt-A" || r.Feeder != "Feeder1" {
		t.Errorf("display names should come from the first record, trimmed: %q / %q", r.DTName, r.Feeder)
	}
	if want := []string{"aosimen", "aayogu"}; !reflect.DeepEqual(r.Users, want) {
		t.Errorf("Users = %v, want %v", r.Users, want)
	}
}

func TestBuild_BOQOnlySynthesis(t *testing.T) {
	filtered := []survey.FieldRecord{field("F1", "DT-A", "aosimen", survey.VendorETC, "Concrete")}
	boq := []survey.BOQRecord{
		{FeederName: "F1", DTName: "DT-A", PolesTotal: 5},
		{FeederName: "F2", DTName: "DT-Z", PolesTotal: 7},
	}

	t.Run("NoFieldFilter", func(t *testing.T) {
		st := filter.State{Feeder: filter.All, Date: "2026-01-30"}
		rows := Build(filtered, boq, st)
		if len(rows) != 2 {
			t.Fatalf("expected synthesized row, got %d rows", len(rows))
		}
		z := rows[1]
		if !z.Synthesized || z.Vendor != VendorPending || z.ActualTotal != 0 || z.BOQTotal != 7 {
			t.Errorf("synthesized row = %+v", z)
		}
		if z.Status() != StatusNotStarted {
			t.Errorf("Status() = %q, want %q", z.Status(), StatusNotStarted)
		}
		if z.BusinessUnit != Placeholder || z.Undertaking != Placeholder {
			t.Errorf("synthesized BU/UT = %q / %q", z.BusinessUnit, z.Undertaking)
		}
	})

	for name, st := range map[string]filter.State{
		"Vendor":      {Vendor: survey.VendorETC},
		"BU":          {BusinessUnit: "Shomolu"},
		"Undertaking": {Undertaking: "Bariga"},
		"User":        {User: "aosimen"},
		"Material":    {Material: filter.MaterialConcrete},
	} {
		t.Run("Suppressed"+name, func(t *testing.T) {
			rows := Build(filtered, boq, st)
			if len(rows) != 1 || rows[0].Synthesized {
				t.Errorf("BOQ-only row must be absent under a %s filter: %+v", name, rows)
			}
		})
	}
}

func TestBuild_FeederAndDTCellFilter(t *testing.T) {
	boq := []survey.BOQRecord{
		{FeederName: "F1", DTName: "DT-A", PolesTotal: 5},
		{FeederName: " F1 ", DTName: "DT-B", PolesTotal: 3},
		{FeederName: "F2", DTName: "DT-C", PolesTotal: 7},
	}

	rows := Build(nil, boq, filter.State{Feeder: "F1"})
	if len(rows) != 2 {
		t.Fatalf("feeder filter compares trimmed BOQ names, got %+v", rows)
	}

	rows = Build(nil, boq, filter.State{Feeder: "F1", DT: "DT-B"})
	if len(rows) != 1 || rows[0].DTName != "DT-B" {
		t.Errorf("DT filter not applied: %+v", rows)
	}
}

func TestBuild_UnknownDefaults(t *testing.T) {
	rows := Build([]survey.FieldRecord{{User: "u"}}, nil, filter.NewState())
	r := rows[0]
	if r.DTName != UnknownDT || r.Feeder != UnknownFeeder || r.Vendor != Placeholder || r.BusinessUnit != Placeholder {
		t.Errorf("defaults not applied: %+v", r)
	}
	if r.Key != "UNKNOWN FEEDER|UNKNOWN DT" {
		t.Errorf("Key = %q", r.Key)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		actual, boq int
		want        string
	}{
		{0, 10, StatusNotStarted},
		{0, 0, StatusNotStarted},
		{10, 10, StatusCompleted},
		{12, 10, StatusCompleted},
		{9, 10, StatusNearCompletion},
		{90, 100, StatusNearCompletion},
		{99, 100, StatusNearCompletion},
		{89, 100, StatusInProgress},
		{5, 10, StatusInProgress},
		{3, 0, StatusInProgress},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.actual, tt.boq); got != tt.want {
			t.Errorf("StatusFor(%d, %d) = %q, want %q", tt.actual, tt.boq, got, tt.want)
		}
	}
}

func TestBuild_NineOfTenIsNearCompletion(t *testing.T) {
	var filtered []survey.FieldRecord
	for i := 0; i < 9; i++ {
		filtered = append(filtered, field("F1", "DT-A", "aosimen", survey.VendorETC, "Concrete"))
	}
	boq := []survey.BOQRecord{{FeederName: "F1", DTName: "DT-A", PolesTotal: 10}}

	rows := Build(filtered, boq, filter.NewState())
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if got := rows[0].Status(); got != StatusNearCompletion {
		t.Errorf("Status() = %q at %v%%, want %q", got, rows[0].Progress(), StatusNearCompletion)
	}
}

func TestRow_DerivedValues(t *testing.T) {
	r := Row{BOQTotal: 10, ActualTotal: 4}
	if r.Progress() != 40 || r.Gap() != 6 {
		t.Errorf("Progress/Gap = %v / %d", r.Progress(), r.Gap())
	}
	if over := (Row{BOQTotal: 2, ActualTotal: 5}); over.Gap() != 0 {
		t.Errorf("Gap must not go negative, got %d", over.Gap())
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != StatusInProgress || got["gap"] != 6.0 || got["boq_total"] != 10.0 {
		t.Errorf("json = %s", out)
	}
}

func TestVarianceFor(t *testing.T) {
	if got := VarianceFor(120, 100); got != 20.0 {
		t.Errorf("VarianceFor(120, 100) = %v, want 20", got)
	}
	if got := VarianceFor(80, 100); got != -20.0 {
		t.Errorf("VarianceFor(80, 100) = %v, want -20", got)
	}
	if got := VarianceFor(5, 0); got != 0 {
		t.Errorf("VarianceFor(5, 0) = %v, want 0", got)
	}
}

func TestVariance_BOQAnchored(t *testing.T) {
	filtered := []survey.FieldRecord{
		field("F1", "DT-A", "aosimen", survey.VendorETC, ""),
		{Feeder: " f1", DTName: "dt-a ", User: "aayogu", VendorName: survey.VendorETC, IssueType: survey.IssueBroken},
		field("F9", "DT-X", "sbolaji", survey.VendorJesom, ""),
	}
	boq := []survey.BOQRecord{
		{FeederName: "F1", DTName: "DT-A", PolesTotal: 2, Good: 1, Bad: 1},
		{FeederName: "F2", DTName: "DT-B", PolesTotal: 0},
	}

	rows := Variance(filtered, boq, filter.State{Vendor: survey.VendorETC})
	if len(rows) != 2 {
		t.Fatalf("every BOQ row must appear regardless of field filters, got %+v", rows)
	}

	a := rows[0]
	if a.ActualTotal != 2 || a.ActualGood != 1 || a.ActualBad != 1 || a.Vendor != survey.VendorETC || a.Variance != 0 {
		t.Errorf("row A = %+v", a)
	}
	if !reflect.DeepEqual(a.Users, []string{"aosimen", "aayogu"}) {
		t.Errorf("row A users = %v", a.Users)
	}

	b := rows[1]
	if b.Vendor != VendorNotStarted || b.ActualTotal != 0 || b.Variance != 0 {
		t.Errorf("row B = %+v", b)
	}

	if rows := Variance(filtered, boq, filter.State{Feeder: "F2"}); len(rows) != 1 || rows[0].DTName != "DT-B" {
		t.Errorf("feeder selection must restrict BOQ rows, got %+v", rows)
	}
}

func TestFeederTargetsAndTopDTs(t *testing.T) {
	rows := []VarianceRow{
		{Feeder: "F1", DTName: "A", BOQTotal: 5, ActualTotal: 1},
		{Feeder: "F2", DTName: "B", BOQTotal: 9, ActualTotal: 2},
		{Feeder: "F1", DTName: "C", BOQTotal: 6, ActualTotal: 3},
		{Feeder: "", DTName: "D", BOQTotal: 1},
	}

	got := FeederTargets(rows, 2)
	want := []FeederTarget{{"F1", 11, 4}, {"F2", 9, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FeederTargets() = %+v, want %+v", got, want)
	}

	top := TopDTsByTarget(rows, 2)
	if len(top) != 2 || top[0].DTName != "B" || top[1].DTName != "C" {
		t.Errorf("TopDTsByTarget() = %+v", top)
	}
	if rows[0].DTName != "A" {
		t.Error("TopDTsByTarget must not reorder its input")
	}
}
