package stats

import (
	"slices"

	"idb-monitor/internal/survey"
)

// UserIssues is the user by issue-type breakdown behind the stacked issues chart.
type UserIssues struct {
	IssueTypes []string       `json:"issue_types"`
	Users      []UserIssueRow `json:"users"`
}

// UserIssueRow holds one user's non-good classifications.
type UserIssueRow struct {
	User   string         `json:"user"`
	Name   string         `json:"name"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// IssuesByUser groups records that are not in good condition by user and issue
// type. Users are ordered by total issues, most first.
func IssuesByUser(records []survey.FieldRecord) UserIssues {
	var out UserIssues
	seenIssue := make(map[string]bool)
	index := make(map[string]int)

	for _, r := range records {
		if r.IsGood() {
			continue
		}
		if !seenIssue[r.IssueType] {
			seenIssue[r.IssueType] = true
			out.IssueTypes = append(out.IssueTypes, r.IssueType)
		}

		i, ok := index[r.User]
		if !ok {
			i = len(out.Users)
			index[r.User] = i
			out.Users = append(out.Users, UserIssueRow{
				User:   r.User,
				Name:   survey.DisplayName(r.User),
				Counts: make(map[string]int),
			})
		}
		out.Users[i].Counts[r.IssueType]++
		out.Users[i].Total++
	}

	slices.SortStableFunc(out.Users, func(a, b UserIssueRow) int { return b.Total - a.Total })
	return out
}

// VelocityPoint is the per-vendor record count of one day.
type VelocityPoint struct {
	Date  string `json:"date"`
	ETC   int    `json:"etc"`
	Jesom int    `json:"jesom"`
	Other int    `json:"other"`
}

// Total is the day's count across vendors.
func (p VelocityPoint) Total() int {
	return p.ETC + p.Jesom + p.Other
}

// Velocity builds the date by vendor series in calendar order. Records without a
// date are not plotted.
func Velocity(records []survey.FieldRecord) []VelocityPoint {
	index := make(map[string]int)
	var points []VelocityPoint

	for _, r := range records {
		date := r.Date()
		if date == "" {
			continue
		}
		i, ok := index[date]
		if !ok {
			i = len(points)
			index[date] = i
			points = append(points, VelocityPoint{Date: date})
		}
		switch r.VendorName {
		case survey.VendorETC:
			points[i].ETC++
		case survey.VendorJesom:
			points[i].Jesom++
		default:
			points[i].Other++
		}
	}

	slices.SortStableFunc(points, func(a, b VelocityPoint) int {
		return survey.CompareDates(a.Date, b.Date)
	})
	return points
}

// ManDays counts distinct (user, date) pairs.
func ManDays(records []survey.FieldRecord) int {
	return distinctCount(records, manDayKey)
}

func manDayKey(r survey.FieldRecord) string {
	return r.User + "|" + r.Date()
}

// VendorStat is the output of one vendor per man-day.
type VendorStat struct {
	Vendor  string  `json:"vendor"`
	Records int     `json:"records"`
	ManDays int     `json:"man_days"`
	RunRate float64 `json:"run_rate"`
}

// VendorPerformance reports records, man-days and records per man-day for each
// contracted vendor. Other is not reported.
func VendorPerformance(records []survey.FieldRecord) []VendorStat {
	out := make([]VendorStat, 0, len(survey.Vendors))
	for _, vendor := range survey.Vendors {
		var own []survey.FieldRecord
		for _, r := range records {
			if r.VendorName == vendor {
				own = append(own, r)
			}
		}
		days := ManDays(own)
		out = append(out, VendorStat{
			Vendor:  vendor,
			Records: len(own),
			ManDays: days,
			RunRate: ratio(len(own), days),
		})
	}
	return out
}

// ActiveDates counts distinct non-empty date prefixes.
func ActiveDates(records []survey.FieldRecord) int {
	return distinctCount(records, func(r survey.FieldRecord) string { return r.Date() })
}

// RunRate is records per active date. The divisor is at least 1.
func RunRate(records []survey.FieldRecord) float64 {
	return ratio(len(records), ActiveDates(records))
}
