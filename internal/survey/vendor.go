package survey

import "strings"

// Vendor labels. InferVendor only ever returns one of these three.
const (
	VendorETC   = "ETC Workforce"
	VendorJesom = "Jesom Technology"
	VendorOther = "Other"
)

// Vendors lists the named contractors in display order.
var Vendors = []string{VendorETC, VendorJesom}

var etcUsers = map[string]struct{}{
	"aoluwatobi": {}, "adamilola2": {}, "aahmed2": {}, "aogundehin": {}, "aadebisi": {},
	"aprecious": {}, "aabrola1": {}, "aayinlani": {}, "aedozie": {}, "aabrola": {},
	"aosimen": {}, "aayogu": {}, "agbolahan": {}, "apatrick": {}, "aoluwadamilare": {},
}

var jesomUsers = map[string]struct{}{
	"sbolaji": {}, "omukaila": {}, "ojamiu": {}, "jemmanuel": {}, "foluwafisayo": {},
	"yakin": {}, "ysalaudeen": {}, "shodimu": {}, "ajemmanuel": {}, "ajumobi": {},
}

// InferVendor maps a surveyor id to its contractor.
// Known rosters win; otherwise ids shaped like "a<name>" belong to ETC.
func InferVendor(user string) string {
	if _, ok := etcUsers[user]; ok {
		return VendorETC
	}
	if _, ok := jesomUsers[user]; ok {
		return VendorJesom
	}
	if strings.HasPrefix(user, "a") && len(user) > 3 {
		return VendorETC
	}
	return VendorOther
}
