package reconcile

import (
	"strings"

	"idb-monitor/internal/survey"
)

// MaxSuggestions caps the search suggestion list.
const MaxSuggestions = 8

// Search keeps rows whose DT, vendor, feeder, business unit, undertaking or any
// contributing user's display name contains query, ignoring case. An empty
// query keeps every row.
func Search(rows []Row, query string) []Row {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := []Row{}
	for _, r := range rows {
		if rowMatches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func rowMatches(r Row, q string) bool {
	for _, field := range []string{r.DTName, r.Vendor, r.Feeder, r.BusinessUnit, r.Undertaking} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, u := range r.Users {
		if strings.Contains(strings.ToLower(survey.DisplayName(u)), q) {
			return true
		}
	}
	return false
}

// Suggestions returns up to MaxSuggestions distinct values containing query,
// in row order. Queries shorter than two characters yield nothing.
func Suggestions(rows []Row, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < 2 {
		return nil
	}

	seen := make(map[string]bool)
	out := []string{}
	add := func(s string) {
		if s != "" && !seen[s] && strings.Contains(strings.ToLower(s), q) {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, r := range rows {
		if len(out) >= MaxSuggestions {
			break
		}
		for _, c := range []string{r.DTName, r.Vendor, r.Feeder, r.BusinessUnit, r.Undertaking} {
			add(c)
		}
		for _, u := range r.Users {
			add(survey.DisplayName(u))
		}
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
