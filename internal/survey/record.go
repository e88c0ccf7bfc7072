package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Source keys of the field dataset. The spelling of "Bussines Unit" matches the upstream export.
const (
	KeyUser        = "User"
	KeyDTName      = "DT Name"
	KeyDTNameAlt   = "DT_Name"
	KeyFeeder      = "Feeder"
	KeyBU          = "Bussines Unit"
	KeyUndertaking = "Undertaking"
	KeyUpriser     = "UpriserNo"
	KeyTimestamp   = "Date/timestamp"
	KeyPoleType    = "Type of Pole"
	KeyPoleTypeAlt = "Pole_Type"
	KeyLatitude    = "Latitude"
	KeyLongitude   = "Longitude"
	KeyBuildings   = "No of Buildings Connected to the Pole"
	KeyIssueType   = "Issue_Type"
	KeyVendorName  = "Vendor_Name"

	KeyIssueSynthesized = "Issue_Synthesized"
)

// materialKeys are checked in order; the first non-empty value wins.
var materialKeys = []string{"Pole Material", "Material", "Pole_Material"}

var poleIDKeys = []string{"Lt PoleSLRN", "LT Pole No"}

// PreferredColumns orders the well-known source keys for tabular output.
func PreferredColumns() []string {
	return []string{
		poleIDKeys[0], poleIDKeys[1], KeyUser, KeyDTName, KeyDTNameAlt, KeyFeeder, KeyBU,
		KeyUndertaking, KeyUpriser, KeyTimestamp, materialKeys[0], materialKeys[1], materialKeys[2],
		KeyPoleType, KeyPoleTypeAlt, KeyLatitude, KeyLongitude, KeyBuildings,
	}
}

// FieldRecord is one surveyed asset. VendorName and IssueType are derived at load time.
type FieldRecord struct {
	PoleID       string
	User         string
	DTName       string
	Feeder       string
	BusinessUnit string
	Undertaking  string
	UpriserNo    string
	Timestamp    string
	Material     string
	PoleType     string
	PoleTypeAlt  string
	Latitude     string
	Longitude    string
	Buildings    int

	VendorName       string
	IssueType        string
	IssueSynthesized bool

	// Raw keeps the source object for generic exports.
	Raw map[string]any
}

// Date returns the date prefix of the timestamp (the part before the first space).
func (r FieldRecord) Date() string {
	date, _, _ := strings.Cut(r.Timestamp, " ")
	return date
}

// IsConcrete reports whether the material or pole type mentions concrete.
func (r FieldRecord) IsConcrete() bool {
	return r.materialContains("concrete")
}

// IsWooden reports whether the material or pole type mentions wood.
func (r FieldRecord) IsWooden() bool {
	return r.materialContains("wood")
}

func (r FieldRecord) materialContains(needle string) bool {
	return strings.Contains(strings.ToLower(r.Material), needle) ||
		strings.Contains(strings.ToLower(r.PoleType), needle)
}

// IsGood reports whether the asset was classified as being in good condition.
func (r FieldRecord) IsGood() bool {
	return r.IssueType == IssueGood
}

// IsNewPole reports whether the record marks a newly installed pole.
func (r FieldRecord) IsNewPole() bool {
	return strings.Contains(strings.ToLower(r.PoleTypeAlt), "new") ||
		strings.Contains(strings.ToLower(r.IssueType), "new")
}

// Coordinates parses latitude and longitude. ok is false when either is not numeric.
func (r FieldRecord) Coordinates() (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// UnmarshalJSON decodes a field object defensively: absent or oddly typed values become zero values.
func (r *FieldRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = FieldRecordFromMap(raw)
	return nil
}

// FieldRecordFromMap builds a record from an already decoded JSON object.
func FieldRecordFromMap(raw map[string]any) FieldRecord {
	rec := FieldRecord{
		User:         asString(raw[KeyUser]),
		DTName:       firstNonEmpty(raw, KeyDTName, KeyDTNameAlt),
		Feeder:       asString(raw[KeyFeeder]),
		BusinessUnit: asString(raw[KeyBU]),
		Undertaking:  asString(raw[KeyUndertaking]),
		UpriserNo:    asString(raw[KeyUpriser]),
		Timestamp:    asString(raw[KeyTimestamp]),
		Material:     firstNonEmpty(raw, materialKeys...),
		PoleType:     asString(raw[KeyPoleType]),
		PoleTypeAlt:  asString(raw[KeyPoleTypeAlt]),
		Latitude:     asString(raw[KeyLatitude]),
		Longitude:    asString(raw[KeyLongitude]),
		Buildings:    ParseInt(raw[KeyBuildings]),
		PoleID:       firstNonEmpty(raw, poleIDKeys...),
		IssueType:    asString(raw[KeyIssueType]),
		Raw:          raw,
	}
	return rec
}

// MarshalJSON emits the source object enriched with the derived attributes.
func (r FieldRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Attributes())
}

// Attributes returns the source object, or one rebuilt from the typed fields,
// plus Vendor_Name, Issue_Type and Issue_Synthesized.
func (r FieldRecord) Attributes() map[string]any {
	out := make(map[string]any, len(r.Raw)+3)
	if r.Raw != nil {
		for k, v := range r.Raw {
			out[k] = v
		}
	} else {
		out[KeyUser] = r.User
		out[KeyDTName] = r.DTName
		out[KeyFeeder] = r.Feeder
		out[KeyBU] = r.BusinessUnit
		out[KeyUndertaking] = r.Undertaking
		out[KeyUpriser] = r.UpriserNo
		out[KeyTimestamp] = r.Timestamp
		out[materialKeys[0]] = r.Material
		out[KeyPoleType] = r.PoleType
		out[KeyLatitude] = r.Latitude
		out[KeyLongitude] = r.Longitude
		out[KeyBuildings] = r.Buildings
		if r.PoleID != "" {
			out[poleIDKeys[0]] = r.PoleID
		}
	}
	out[KeyVendorName] = r.VendorName
	out[KeyIssueType] = r.IssueType
	out[KeyIssueSynthesized] = r.IssueSynthesized
	return out
}

// DecodeFieldRecords decodes a JSON array of field objects.
func DecodeFieldRecords(data []byte) ([]FieldRecord, error) {
	var records []FieldRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode field dataset: %w", err)
	}
	return records, nil
}

func firstNonEmpty(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := asString(raw[k]); v != "" {
			return v
		}
	}
	return ""
}
