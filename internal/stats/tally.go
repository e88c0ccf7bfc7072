package stats

import (
	"fmt"
	"slices"
	"strings"

	"idb-monitor/internal/survey"
)

// Bucket is one group of a tally.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Tally is a group-by count in first-seen key order.
type Tally []Bucket

// Order selects how a tally is ranked.
type Order int

const (
	FirstSeen Order = iota
	Descending
	Ascending
	Alphabetical
)

// ParseOrder maps a user-facing order name to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	case "alpha", "alphabetical", "name":
		return Alphabetical, nil
	case "first_seen", "natural":
		return FirstSeen, nil
	default:
		return FirstSeen, fmt.Errorf("unknown order %q", s)
	}
}

// CountBy groups records by key in a single pass.
func CountBy(records []survey.FieldRecord, key func(survey.FieldRecord) string) Tally {
	index := make(map[string]int)
	var t Tally
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(t)
			index[k] = i
			t = append(t, Bucket{Key: k})
		}
		t[i].Count++
	}
	return t
}

// Rank returns a sorted copy of t. Sorting is stable: ties keep first-seen order.
func Rank(t Tally, order Order) Tally {
	out := slices.Clone(t)
	switch order {
	case Descending:
		slices.SortStableFunc(out, func(a, b Bucket) int { return b.Count - a.Count })
	case Ascending:
		slices.SortStableFunc(out, func(a, b Bucket) int { return a.Count - b.Count })
	case Alphabetical:
		slices.SortStableFunc(out, func(a, b Bucket) int { return strings.Compare(a.Key, b.Key) })
	}
	return out
}

// Top returns the n largest buckets, largest first.
func (t Tally) Top(n int) Tally {
	return head(Rank(t, Descending), n)
}

// Bottom returns the n smallest buckets, smallest first.
func (t Tally) Bottom(n int) Tally {
	return head(Rank(t, Ascending), n)
}

// Total is the sum of all bucket counts.
func (t Tally) Total() int {
	sum := 0
	for _, b := range t {
		sum += b.Count
	}
	return sum
}

// Get returns the count of key, or 0.
func (t Tally) Get(key string) int {
	for _, b := range t {
		if b.Key == key {
			return b.Count
		}
	}
	return 0
}

// Map converts the tally to a map, losing order.
func (t Tally) Map() map[string]int {
	m := make(map[string]int, len(t))
	for _, b := range t {
		m[b.Key] = b.Count
	}
	return m
}

func head(t Tally, n int) Tally {
	if n < 0 || n >= len(t) {
		return t
	}
	return t[:n]
}
