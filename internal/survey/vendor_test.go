package survey

import "testing"

func TestInferVendor(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"aoluwatobi", VendorETC},
		{"apatrick", VendorETC},
		{"sbolaji", VendorJesom},
		{"ajemmanuel", VendorJesom}, // roster beats the "a" heuristic
		{"ajumobi", VendorJesom},
		{"anewhire", VendorETC},
		{"abc", VendorOther}, // too short for the heuristic
		{"bsomeone", VendorOther},
		{"", VendorOther},
		{"Aoluwatobi", VendorOther}, // case-sensitive
	}

	for _, tt := range tests {
		if got := InferVendor(tt.user); got != tt.want {
			t.Errorf("InferVendor(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestInferVendor_TotalAndDeterministic(t *testing.T) {
	allowed := map[string]bool{VendorETC: true, VendorJesom: true, VendorOther: true}
	inputs := []string{"", "a", "aaaa", "zzz", "sbolaji", "aoluwatobi", "ñandu", "a b c", "12345"}

	for _, in := range inputs {
		first := InferVendor(in)
		if !allowed[first] {
			t.Errorf("InferVendor(%q) = %q, not a known vendor label", in, first)
		}
		for i := 0; i < 5; i++ {
			if got := InferVendor(in); got != first {
				t.Fatalf("InferVendor(%q) not deterministic: %q then %q", in, first, got)
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("aosimen"); got != "Osimen Faith" {
		t.Errorf("DisplayName(aosimen) = %q", got)
	}
	if got := DisplayName("unknown1"); got != "unknown1" {
		t.Errorf("DisplayName fallback = %q, want id", got)
	}
}
