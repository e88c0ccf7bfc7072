package stats

import "idb-monitor/internal/survey"

// Card is one KPI: an actual count and, in BOQ view, its target.
type Card struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Actual    int     `json:"actual"`
	Target    int     `json:"target"`
	Targeted  bool    `json:"targeted"`
	Progress  float64 `json:"progress_pct"`
	Remaining int     `json:"remaining"`
}

// BarWidth is the progress clamped to 100.
func (c Card) BarWidth() float64 {
	return min(c.Progress, 100)
}

func newCard(key, label string, target, actual int, targeted bool) Card {
	c := Card{Key: key, Label: label, Actual: actual, Targeted: targeted}
	if !targeted {
		return c
	}
	c.Target = target
	if target > 0 {
		c.Progress = Percent(actual, target)
		c.Remaining = max(0, target-actual)
	}
	return c
}

// KPISet is the card row of the dashboard plus overall completion.
type KPISet struct {
	Records          Card    `json:"records"`
	Good             Card    `json:"good"`
	Bad              Card    `json:"bad"`
	New              Card    `json:"new"`
	Feeders          Card    `json:"feeders"`
	DTs              Card    `json:"dts"`
	Buildings        Card    `json:"buildings"`
	SystemCompletion float64 `json:"system_completion_pct"`
}

// Cards lists the cards in display order.
func (k KPISet) Cards() []Card {
	return []Card{k.Records, k.Good, k.Bad, k.New, k.Feeders, k.DTs, k.Buildings}
}

// KPIs computes the cards over the filtered records. Targets are only attached
// when withBOQ is set and BOQ rows are loaded. Buildings never carry a target.
func KPIs(filtered []survey.FieldRecord, boq []survey.BOQRecord, withBOQ bool) KPISet {
	targeted := withBOQ && len(boq) > 0
	totals := survey.SumBOQ(boq)

	var good, bad, fresh, buildings int
	for _, r := range filtered {
		if r.IsGood() {
			good++
		} else {
			bad++
		}
		if r.IsNewPole() {
			fresh++
		}
		buildings += r.Buildings
	}

	feeders := distinctCount(filtered, func(r survey.FieldRecord) string { return r.Feeder })
	dts := distinctCount(filtered, func(r survey.FieldRecord) string { return r.DTName })

	return KPISet{
		Records:          newCard("records", "Poles", totals.Poles, len(filtered), targeted),
		Good:             newCard("good", "Good Poles", totals.Good, good, targeted),
		Bad:              newCard("bad", "Bad Poles", totals.Bad, bad, targeted),
		New:              newCard("new", "New Poles", totals.NewPole, fresh, targeted),
		Feeders:          newCard("feeders", "Feeders", totals.Feeders, feeders, targeted),
		DTs:              newCard("dts", "DTs", totals.DTs, dts, targeted),
		Buildings:        newCard("buildings", "Buildings", 0, buildings, targeted),
		SystemCompletion: CompletionPct(len(filtered), totals.Poles),
	}
}

// CompletionPct is actual records against the global BOQ pole total.
func CompletionPct(actual, boqTotal int) float64 {
	return Percent(actual, boqTotal)
}
