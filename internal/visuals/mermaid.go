package visuals

import (
	"fmt"
	"math"
	"strings"

	"idb-monitor/internal/reconcile"
	"idb-monitor/internal/stats"
	"idb-monitor/internal/survey"
)

// maxPoints is where Mermaid xychart labels start to overlap.
const maxPoints = 60

func label(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	if s == "" {
		s = "Unknown"
	}
	return fmt.Sprintf("\"%s\"", s)
}

func ceilAxis(maxVal float64) int {
	return max(1, int(math.Ceil(maxVal*1.1)))
}

func xychart(title string, labels []string, yLabel string, maxY float64, series ...string) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"%s\" 0 --> %d\n", yLabel, ceilAxis(maxY)))
	for _, s := range series {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	sb.WriteString("```")
	return sb.String()
}

func tallyBars(title, yLabel string, t stats.Tally, name func(string) string) string {
	if len(t) == 0 {
		return ""
	}

	var labels, values []string
	maxVal := 0
	for _, b := range t {
		labels = append(labels, label(name(b.Key)))
		values = append(values, fmt.Sprintf("%d", b.Count))
		maxVal = max(maxVal, b.Count)
	}
	return xychart(title, labels, yLabel, float64(maxVal), fmt.Sprintf("    bar [%s]", strings.Join(values, ", ")))
}

// GenerateUserPerformanceChart plots records per officer, using display names.
func GenerateUserPerformanceChart(byUser stats.Tally) string {
	return tallyBars("Officer Performance", "Records", byUser, survey.DisplayName)
}

// GenerateTopFeedersChart plots the feeders with the most records.
func GenerateTopFeedersChart(feeders stats.Tally) string {
	return tallyBars("Top Feeders", "Records", feeders, func(s string) string { return s })
}

// GenerateVelocityChart plots daily records per vendor, one line each for ETC, Jesom and Other.
func GenerateVelocityChart(points []stats.VelocityPoint) string {
	if len(points) == 0 {
		return ""
	}

	step := 1
	if len(points) > maxPoints {
		step = int(math.Ceil(float64(len(points)) / maxPoints))
	}

	var labels, etc, jesom, other []string
	maxVal := 0
	for i, p := range points {
		maxVal = max(maxVal, p.ETC, p.Jesom, p.Other)
		if i%step != 0 && i != len(points)-1 {
			continue
		}
		labels = append(labels, label(p.Date))
		etc = append(etc, fmt.Sprintf("%d", p.ETC))
		jesom = append(jesom, fmt.Sprintf("%d", p.Jesom))
		other = append(other, fmt.Sprintf("%d", p.Other))
	}

	return xychart("Daily Velocity (ETC / Jesom / Other)", labels, "Records per Day", float64(maxVal),
		fmt.Sprintf("    line [%s]", strings.Join(etc, ", ")),
		fmt.Sprintf("    line [%s]", strings.Join(jesom, ", ")),
		fmt.Sprintf("    line [%s]", strings.Join(other, ", ")),
	)
}

// GenerateTargetChart compares BOQ target (first bar) with actual records (second bar) per feeder.
func GenerateTargetChart(targets []reconcile.FeederTarget) string {
	if len(targets) == 0 {
		return ""
	}

	var labels, boq, actual []string
	maxVal := 0
	for _, t := range targets {
		labels = append(labels, label(t.Feeder))
		boq = append(boq, fmt.Sprintf("%d", t.BOQ))
		actual = append(actual, fmt.Sprintf("%d", t.Actual))
		maxVal = max(maxVal, t.BOQ, t.Actual)
	}

	return xychart("Target vs Actual by Feeder", labels, "Poles", float64(maxVal),
		fmt.Sprintf("    bar [%s]", strings.Join(boq, ", ")),
		fmt.Sprintf("    bar [%s]", strings.Join(actual, ", ")),
	)
}

// GenerateRunRateChart plots records per man-day for each vendor.
func GenerateRunRateChart(vendors []stats.VendorStat) string {
	if len(vendors) == 0 {
		return ""
	}

	var labels, values []string
	maxVal := 0.0
	for _, v := range vendors {
		labels = append(labels, label(v.Vendor))
		values = append(values, fmt.Sprintf("%.1f", v.RunRate))
		maxVal = math.Max(maxVal, v.RunRate)
	}
	return xychart("Vendor Run Rate", labels, "Records per Man-Day", maxVal,
		fmt.Sprintf("    bar [%s]", strings.Join(values, ", ")))
}

// GenerateIssuePie shows the share of each condition classification.
func GenerateIssuePie(issues stats.Tally) string {
	return pie("Pole Condition", issues)
}

// GenerateMaterialPie shows the concrete and wooden split.
func GenerateMaterialPie(materials stats.Tally) string {
	return pie("Pole Material", materials)
}

func pie(title string, t stats.Tally) string {
	if t.Total() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("pie title %s\n", title))
	for _, b := range t {
		if b.Count == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s : %d\n", label(b.Key), b.Count))
	}
	sb.WriteString("```")
	return sb.String()
}
