package commands

import (
	"idb-monitor/internal/dashboard"
	"idb-monitor/internal/filter"
	"idb-monitor/internal/survey"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// filterFlags binds one flag per filter dimension to a command.
type filterFlags struct {
	state  filter.State
	search string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.state.Vendor, "vendor", filter.All, "vendor")
	fs.StringVar(&f.state.BusinessUnit, "bu", filter.All, "business unit")
	fs.StringVar(&f.state.Undertaking, "undertaking", filter.All, "undertaking")
	fs.StringVar(&f.state.User, "user", filter.All, "officer id")
	fs.StringVar(&f.state.DT, "dt", filter.All, "DT name")
	fs.StringVar(&f.state.Upriser, "upriser", filter.All, "upriser number")
	fs.StringVar(&f.state.Feeder, "feeder", filter.All, "feeder")
	fs.StringVar(&f.state.Material, "material", filter.All, "pole material (Concrete or Wood)")
	fs.StringVar(&f.state.Date, "date", filter.All, "survey date (YYYY-MM-DD)")
	fs.StringVar(&f.search, "search", "", "reconciliation search text")
}

// session opens a session over ds with the flag selections applied. Selections
// that do not exist in the data are dropped with a warning.
func (f *filterFlags) session(ds *survey.Dataset) *dashboard.Session {
	sess := dashboard.NewSession(ds, cfg.PageSize)
	sess.SetState(f.state)
	sess.SetSearch(f.search)

	requested := f.state.Normalized()
	applied := sess.State()
	for _, dim := range []filter.Dimension{
		filter.DimVendor, filter.DimBusinessUnit, filter.DimUndertaking, filter.DimUser,
		filter.DimDT, filter.DimUpriser, filter.DimFeeder, filter.DimMaterial, filter.DimDate,
	} {
		if requested.Get(dim) != applied.Get(dim) {
			log.Warn().Str("dimension", string(dim)).Str("value", requested.Get(dim)).Msg("Filter value not available, using All")
		}
	}
	return sess
}
