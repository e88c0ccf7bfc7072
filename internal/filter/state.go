package filter

import (
	"fmt"
	"strings"
)

// All is the wildcard selection of every dimension.
const All = "All"

// Fixed material selections. Materials are never derived from data.
const (
	MaterialConcrete = "Concrete"
	MaterialWood     = "Wood"
)

// Materials returns the fixed material enumeration.
func Materials() []string {
	return []string{MaterialConcrete, MaterialWood}
}

// Dimension names a filterable attribute.
type Dimension string

const (
	DimVendor       Dimension = "vendor"
	DimBusinessUnit Dimension = "business_unit"
	DimUndertaking  Dimension = "undertaking"
	DimUser         Dimension = "user"
	DimDT           Dimension = "dt"
	DimUpriser      Dimension = "upriser"
	DimFeeder       Dimension = "feeder"
	DimMaterial     Dimension = "material"
	DimDate         Dimension = "date"
)

var dimensionAliases = map[string]Dimension{
	"vendor":        DimVendor,
	"bu":            DimBusinessUnit,
	"business_unit": DimBusinessUnit,
	"businessunit":  DimBusinessUnit,
	"undertaking":   DimUndertaking,
	"ut":            DimUndertaking,
	"user":          DimUser,
	"officer":       DimUser,
	"dt":            DimDT,
	"dt_name":       DimDT,
	"upriser":       DimUpriser,
	"feeder":        DimFeeder,
	"material":      DimMaterial,
	"date":          DimDate,
}

// ParseDimension resolves a dimension name, accepting a few common aliases.
func ParseDimension(name string) (Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if d, ok := dimensionAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown filter dimension %q", name)
}

// State holds one selection per dimension. An empty string means All.
type State struct {
	Vendor       string `json:"vendor" form:"vendor"`
	BusinessUnit string `json:"business_unit" form:"bu"`
	Undertaking  string `json:"undertaking" form:"undertaking"`
	User         string `json:"user" form:"user"`
	DT           string `json:"dt" form:"dt"`
	Upriser      string `json:"upriser" form:"upriser"`
	Feeder       string `json:"feeder" form:"feeder"`
	Material     string `json:"material" form:"material"`
	Date         string `json:"date" form:"date"`
}

// NewState returns a state with every dimension set to All.
func NewState() State {
	return State{
		Vendor:       All,
		BusinessUnit: All,
		Undertaking:  All,
		User:         All,
		DT:           All,
		Upriser:      All,
		Feeder:       All,
		Material:     All,
		Date:         All,
	}
}

// IsAll reports whether v is the wildcard.
func IsAll(v string) bool {
	return v == "" || v == All
}

func norm(v string) string {
	if IsAll(v) {
		return All
	}
	return v
}

// Normalized spells every wildcard as All.
func (s State) Normalized() State {
	return State{
		Vendor:       norm(s.Vendor),
		BusinessUnit: norm(s.BusinessUnit),
		Undertaking:  norm(s.Undertaking),
		User:         norm(s.User),
		DT:           norm(s.DT),
		Upriser:      norm(s.Upriser),
		Feeder:       norm(s.Feeder),
		Material:     norm(s.Material),
		Date:         norm(s.Date),
	}
}

// IsWildcard reports whether no dimension is selected.
func (s State) IsWildcard() bool {
	return s.Normalized() == NewState()
}

// HasFieldAttributeFilter reports whether a selection depends on attributes only
// field data can supply (vendor, business unit, undertaking, user or material).
// BOQ-only rows cannot be attributed under such a filter.
func (s State) HasFieldAttributeFilter() bool {
	return !IsAll(s.Vendor) ||
		!IsAll(s.BusinessUnit) ||
		!IsAll(s.Undertaking) ||
		!IsAll(s.User) ||
		!IsAll(s.Material)
}

// Get returns the selection of a dimension.
func (s State) Get(d Dimension) string {
	switch d {
	case DimVendor:
		return norm(s.Vendor)
	case DimBusinessUnit:
		return norm(s.BusinessUnit)
	case DimUndertaking:
		return norm(s.Undertaking)
	case DimUser:
		return norm(s.User)
	case DimDT:
		return norm(s.DT)
	case DimUpriser:
		return norm(s.Upriser)
	case DimFeeder:
		return norm(s.Feeder)
	case DimMaterial:
		return norm(s.Material)
	case DimDate:
		return norm(s.Date)
	default:
		return All
	}
}

// With returns a copy of s with one dimension replaced. No cascade is applied.
func (s State) With(d Dimension, value string) (State, error) {
	value = norm(strings.TrimSpace(value))
	switch d {
	case DimVendor:
		s.Vendor = value
	case DimBusinessUnit:
		s.BusinessUnit = value
	case DimUndertaking:
		s.Undertaking = value
	case DimUser:
		s.User = value
	case DimDT:
		s.DT = value
	case DimUpriser:
		s.Upriser = value
	case DimFeeder:
		s.Feeder = value
	case DimMaterial:
		s.Material = value
	case DimDate:
		s.Date = value
	default:
		return s, fmt.Errorf("unknown filter dimension %q", d)
	}
	return s, nil
}
