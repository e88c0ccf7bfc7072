package stats

import (
	"fmt"
	"math"
	"time"

	"idb-monitor/internal/survey"
)

// VendorDailyTarget is the per-vendor assets-per-day target.
const VendorDailyTarget = 50

const (
	StatusOnTrack           = "On Track"
	StatusRequiresAttention = "Requires Attention"
)

// Recommendation is one titled action item.
type Recommendation struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// VendorReport is the strategic assessment of one vendor.
type VendorReport struct {
	Vendor          string           `json:"vendor"`
	Records         int              `json:"records"`
	ActiveDays      int              `json:"active_days"`
	RunRate         int              `json:"run_rate"`
	Undertakings    int              `json:"undertakings"`
	DefectPct       float64          `json:"defect_pct"`
	LastActive      string           `json:"last_active,omitempty"`
	LagDays         int              `json:"lag_days"`
	Status          string           `json:"status"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendations assesses each contracted vendor over records, which callers
// pass unfiltered. Vendors without records are skipped.
func Recommendations(records []survey.FieldRecord, now time.Time) []VendorReport {
	var out []VendorReport
	for _, vendor := range survey.Vendors {
		var own []survey.FieldRecord
		for _, r := range records {
			if r.VendorName == vendor {
				own = append(own, r)
			}
		}
		if len(own) == 0 {
			continue
		}
		out = append(out, assessVendor(vendor, own, now))
	}
	return out
}

func assessVendor(vendor string, records []survey.FieldRecord, now time.Time) VendorReport {
	rep := VendorReport{
		Vendor:     vendor,
		Records:    len(records),
		ActiveDays: max(1, ActiveDates(records)),
	}

	// 1. Velocity
	rep.RunRate = int(math.Round(RunRate(records)))

	// 2. Coverage
	rep.Undertakings = distinctCount(records, func(r survey.FieldRecord) string { return r.Undertaking })

	// 3. Quality
	defects := 0
	for _, r := range records {
		if r.IssueType != "" && !r.IsGood() {
			defects++
		}
	}
	rep.DefectPct = Round1(Percent(defects, len(records)))

	// 4. Synchronization
	var last time.Time
	for _, r := range records {
		if d, ok := survey.ParseDate(r.Date()); ok && d.After(last) {
			last = d
			rep.LastActive = r.Date()
		}
	}
	if !last.IsZero() {
		rep.LagDays = int(math.Ceil(math.Abs(now.Sub(last).Hours()) / 24))
	}

	rep.Status = StatusOnTrack
	if rep.RunRate < VendorDailyTarget {
		rep.Status = StatusRequiresAttention
	}

	rep.Recommendations = []Recommendation{
		velocityAdvice(rep.RunRate),
		coverageAdvice(rep.Undertakings, rep.Records),
		qualityAdvice(rep.DefectPct, rep.LagDays, rep.LastActive),
	}
	return rep
}

func velocityAdvice(rate int) Recommendation {
	switch {
	case rate < 30:
		return Recommendation{
			Title: "Accelerate Deployment",
			Text:  fmt.Sprintf("Current velocity (%d/day) is critically low. Immediate resource scale-up is required to meet the daily target of %d.", rate, VendorDailyTarget),
		}
	case rate < VendorDailyTarget:
		return Recommendation{
			Title: "Increase Pace",
			Text:  fmt.Sprintf("Current velocity (%d/day) is approaching target but still falls short. Consider extending operational hours.", rate),
		}
	default:
		return Recommendation{
			Title: "Sustain Momentum",
			Text:  fmt.Sprintf("Strong performance with a velocity of %d/day. Keep this consistency to ensure project timelines are met.", rate),
		}
	}
}

func coverageAdvice(undertakings, records int) Recommendation {
	if undertakings < 2 && records > 100 {
		return Recommendation{
			Title: "Expand Coverage",
			Text:  fmt.Sprintf("High activity concentration detected in only %d Undertaking. Redeploy teams to under-served areas to avoid data gaps.", undertakings),
		}
	}
	return Recommendation{
		Title: "Balanced Coverage",
		Text:  fmt.Sprintf("Active across %d Undertakings. Continue maintaining balanced visibility across the network.", undertakings),
	}
}

func qualityAdvice(defectPct float64, lagDays int, lastActive string) Recommendation {
	switch {
	case defectPct > 20:
		return Recommendation{
			Title: "Enhanced Reporting",
			Text:  fmt.Sprintf("High defect rate (%.1f%%). Ensure engineering validation is performed to confirm the accuracy of 'Bad' pole tags.", defectPct),
		}
	case defectPct < 2:
		return Recommendation{
			Title: "Precision Check",
			Text:  fmt.Sprintf("Defect rate is unusually low (%.1f%%). Conduct spot checks to ensure defects are not being overlooked.", defectPct),
		}
	case lagDays > 3:
		return Recommendation{
			Title: "Data Synchronization",
			Text:  fmt.Sprintf("Data lag detected (last active: %s). Enforce daily sync protocols to maintain real-time dashboard accuracy.", lastActive),
		}
	default:
		return Recommendation{
			Title: "Quality Assurance",
			Text:  fmt.Sprintf("Data quality appears healthy (Defect Rate: %.1f%%). Continue standard verification procedures.", defectPct),
		}
	}
}
