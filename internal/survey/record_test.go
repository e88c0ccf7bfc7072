package survey

import (
	"encoding/json"
	"testing"
)

func TestDecodeFieldRecords(t *testing.T) {
	payload := []byte(`[
		{
			"User": "aosimen",
			"DT Name": "DT-A",
			"Feeder": "F1",
			"Bussines Unit": "Shomolu",
			"Undertaking": "Bariga",
			"UpriserNo": 3,
			"Date/timestamp": "2026-01-30 10:15:00",
			"Material": "Concrete",
			"Type of Pole": "LT Pole",
			"Latitude": "6.536",
			"Longitude": 3.357,
			"No of Buildings Connected to the Pole": "4",
			"Lt PoleSLRN": "SLRN-1"
		},
		{"User": "sbolaji", "DT_Name": "DT-B", "Pole Material": "", "Pole_Material": "Wooden", "Issue_Type": "Broken Pole"},
		{}
	]`)

	records, err := DecodeFieldRecords(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	r := records[0]
	if r.UpriserNo != "3" {
		t.Errorf("UpriserNo = %q, want %q", r.UpriserNo, "3")
	}
	if r.Date() != "2026-01-30" {
		t.Errorf("Date() = %q", r.Date())
	}
	if !r.IsConcrete() || r.IsWooden() {
		t.Errorf("material flags wrong for %q", r.Material)
	}
	if r.Buildings != 4 {
		t.Errorf("Buildings = %d, want 4", r.Buildings)
	}
	if r.PoleID != "SLRN-1" {
		t.Errorf("PoleID = %q", r.PoleID)
	}
	lat, lon, ok := r.Coordinates()
	if !ok || lat != 6.536 || lon != 3.357 {
		t.Errorf("Coordinates() = %v, %v, %v", lat, lon, ok)
	}

	r = records[1]
	if r.DTName != "DT-B" {
		t.Errorf("DT alias not honoured: %q", r.DTName)
	}
	if r.Material != "Wooden" || !r.IsWooden() {
		t.Errorf("material alias resolution failed: %q", r.Material)
	}
	if r.IssueType != IssueBroken {
		t.Errorf("IssueType = %q", r.IssueType)
	}

	empty := records[2]
	if empty.User != "" || empty.Date() != "" {
		t.Errorf("empty object should decode to zero values, got %+v", empty)
	}
	if _, _, ok := empty.Coordinates(); ok {
		t.Error("empty coordinates should not parse")
	}
}

func TestFieldRecord_MarshalJSONAddsDerivedFields(t *testing.T) {
	records, err := DecodeFieldRecords([]byte(`[{"User": "aosimen", "Extra": "kept"}]`))
	if err != nil {
		t.Fatal(err)
	}
	Normalize(records, FixedClassifier(IssueGood))

	out, err := json.Marshal(records[0])
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}

	if got["Extra"] != "kept" {
		t.Errorf("raw key lost: %v", got)
	}
	if got[KeyVendorName] != VendorETC {
		t.Errorf("Vendor_Name = %v", got[KeyVendorName])
	}
	if got[KeyIssueType] != IssueGood || got["Issue_Synthesized"] != true {
		t.Errorf("issue fields = %v / %v", got[KeyIssueType], got["Issue_Synthesized"])
	}
}
