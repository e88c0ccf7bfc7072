package reconcile

import (
	"fmt"
	"reflect"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{DTName: "Ajao DT", Feeder: "F1", BusinessUnit: "Shomolu", Undertaking: "Bariga", Vendor: "ETC Workforce", Users: []string{"aosimen"}},
		{DTName: "Bolade DT", Feeder: "F2", BusinessUnit: "Ikeja", Undertaking: "Ojodu", Vendor: "Jesom Technology", Users: []string{"sbolaji"}},
		{DTName: "Coker DT", Feeder: "F3", BusinessUnit: "-", Undertaking: "-", Vendor: VendorPending, Users: []string{}},
	}
}

func TestSearch(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"  ", 3},
		{"dt", 3},
		{"AJAO", 1},
		{"jesom", 1},
		{"ojodu", 1},
		{"osimen", 1}, // display name of aosimen
		{"aosimen", 0},
		{"pending", 1},
		{"nothing", 0},
	}

	for _, tt := range tests {
		if got := Search(rows, tt.query); len(got) != tt.want {
			t.Errorf("Search(%q) returned %d rows, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestSuggestions(t *testing.T) {
	rows := sampleRows()

	if got := Suggestions(rows, "a"); got != nil {
		t.Errorf("single character query should yield nothing, got %v", got)
	}

	got := Suggestions(rows, "bo")
	want := []string{"Bolade DT", "Shodimu Bolaji"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(bo) = %v, want %v", got, want)
	}

	var many []Row
	for i := 0; i < 20; i++ {
		many = append(many, Row{DTName: fmt.Sprintf("DT %02d", i), Users: []string{}})
	}
	if got := Suggestions(many, "dt"); len(got) != MaxSuggestions {
		t.Errorf("expected %d suggestions, got %d", MaxSuggestions, len(got))
	}
}
