package dashboard

import (
	"time"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/stats"
	"idb-monitor/internal/survey"
)

// Overview bundles the headline figures of a filtered view.
type Overview struct {
	LoadID            string             `json:"load_id"`
	LoadedAt          time.Time          `json:"loaded_at"`
	Filters           filter.State       `json:"filters"`
	TotalRecords      int                `json:"total_records"`
	FilteredRecords   int                `json:"filtered_records"`
	SynthesizedIssues int                `json:"synthesized_issues"`
	KPIs              stats.KPISet       `json:"kpis"`
	Summary           *stats.Summary     `json:"summary,omitempty"`
	Insights          stats.KeyInsights  `json:"insights"`
	RunRate           float64            `json:"run_rate"`
	Vendors           []stats.VendorStat `json:"vendors"`
}

// BuildOverview computes an Overview without a session, for stateless callers.
func BuildOverview(ds *survey.Dataset, st filter.State, withBOQ bool) Overview {
	filtered := filter.Apply(ds.Field, st)

	o := Overview{
		LoadID:            ds.LoadID,
		LoadedAt:          ds.LoadedAt,
		Filters:           st.Normalized(),
		TotalRecords:      len(ds.Field),
		FilteredRecords:   len(filtered),
		SynthesizedIssues: ds.SynthesizedIssues,
		KPIs:              stats.KPIs(filtered, ds.BOQ, withBOQ),
		Insights:          stats.Insights(filtered, !filter.IsAll(st.User)),
		RunRate:           stats.Round1(stats.RunRate(filtered)),
		Vendors:           stats.VendorPerformance(filtered),
	}
	// The executive summary always describes the whole dataset.
	if s, ok := stats.ExecutiveSummary(ds.Field); ok {
		o.Summary = &s
	}
	return o
}
