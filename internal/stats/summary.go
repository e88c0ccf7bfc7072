package stats

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"idb-monitor/internal/survey"
)

// ProjectDailyTarget is the project-wide assets-per-day target.
const ProjectDailyTarget = 100

// Summary is the executive summary of a record set.
type Summary struct {
	TotalAssets       int     `json:"total_assets"`
	DTs               int     `json:"dts"`
	Feeders           int     `json:"feeders"`
	Officers          int     `json:"officers"`
	DaysWorked        int     `json:"days_worked"`
	AvgRate           float64 `json:"avg_rate"`
	MedianDailyOutput float64 `json:"median_daily_output"`
	LeadingVendor     string  `json:"leading_vendor"`
	LeadingShare      float64 `json:"leading_share_pct"`
	VelocityHealthy   bool    `json:"velocity_healthy"`
	Status            string  `json:"status"`
}

// ExecutiveSummary summarizes records. ok is false for an empty set.
func ExecutiveSummary(records []survey.FieldRecord) (s Summary, ok bool) {
	if len(records) == 0 {
		return Summary{}, false
	}

	s.TotalAssets = len(records)
	s.DTs = distinctCount(records, func(r survey.FieldRecord) string { return r.DTName })
	s.Feeders = distinctCount(records, func(r survey.FieldRecord) string { return r.Feeder })
	s.Officers = distinctCount(records, func(r survey.FieldRecord) string { return r.User })
	s.DaysWorked = max(1, ActiveDates(records))
	s.AvgRate = Round1(RunRate(records))

	var daily []int
	for _, b := range ByDate(records) {
		daily = append(daily, b.Count)
	}
	s.MedianDailyOutput = MedianInt(daily)

	lead := ByVendor(records).Top(1)[0]
	s.LeadingVendor = lead.Key
	s.LeadingShare = Round1(Percent(lead.Count, len(records)))
	s.VelocityHealthy = s.AvgRate >= ProjectDailyTarget

	p := message.NewPrinter(language.English)
	s.Status = p.Sprintf("Data processing complete. %s is currently leading with %.1f%% of total capture. ", s.LeadingVendor, s.LeadingShare)
	if s.VelocityHealthy {
		s.Status += p.Sprintf("Project velocity is healthy at %.1f assets per day.", s.AvgRate)
	} else {
		s.Status += p.Sprintf("Overall project velocity (%.1f/day) requires improvement to strictly meet timelines.", s.AvgRate)
	}
	return s, true
}

// Lines renders the summary as labelled, thousands-separated lines.
func (s Summary) Lines() []string {
	p := message.NewPrinter(language.English)
	return []string{
		p.Sprintf("Total assets:    %d", s.TotalAssets),
		p.Sprintf("DTs:             %d", s.DTs),
		p.Sprintf("Feeders:         %d", s.Feeders),
		p.Sprintf("Field officers:  %d", s.Officers),
		p.Sprintf("Days worked:     %d", s.DaysWorked),
		p.Sprintf("Average rate:    %.1f/day", s.AvgRate),
		p.Sprintf("Median per day:  %.1f", s.MedianDailyOutput),
		s.Status,
	}
}
