package survey

import (
	"encoding/json"
	"fmt"
)

// BOQRecord is one baseline target row keyed by feeder and DT name.
type BOQRecord struct {
	FeederName string `json:"FEEDER NAME"`
	DTName     string `json:"DT NAME"`
	PolesTotal int    `json:"POLES Grand Total"`
	Good       int    `json:"GOOD"`
	Bad        int    `json:"BAD"`
	NewPole    int    `json:"NEW POLE"`
}

// UnmarshalJSON accepts counts as strings or numbers; non-numeric counts become 0.
func (b *BOQRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = BOQRecord{
		FeederName: asString(raw["FEEDER NAME"]),
		DTName:     asString(raw["DT NAME"]),
		PolesTotal: ParseInt(raw["POLES Grand Total"]),
		Good:       ParseInt(raw["GOOD"]),
		Bad:        ParseInt(raw["BAD"]),
		NewPole:    ParseInt(raw["NEW POLE"]),
	}
	return nil
}

// DecodeBOQRecords decodes a JSON array of BOQ objects.
func DecodeBOQRecords(data []byte) ([]BOQRecord, error) {
	var records []BOQRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode BOQ dataset: %w", err)
	}
	return records, nil
}

// BOQTotals sums the target columns over a set of BOQ rows.
type BOQTotals struct {
	Poles   int `json:"poles"`
	Good    int `json:"good"`
	Bad     int `json:"bad"`
	NewPole int `json:"new_pole"`
	Feeders int `json:"feeders"`
	DTs     int `json:"dts"`
}

// SumBOQ totals the targets and counts distinct raw feeder and DT names.
func SumBOQ(rows []BOQRecord) BOQTotals {
	feeders := make(map[string]struct{})
	dts := make(map[string]struct{})
	var t BOQTotals
	for _, r := range rows {
		t.Poles += r.PolesTotal
		t.Good += r.Good
		t.Bad += r.Bad
		t.NewPole += r.NewPole
		feeders[r.FeederName] = struct{}{}
		dts[r.DTName] = struct{}{}
	}
	t.Feeders = len(feeders)
	t.DTs = len(dts)
	return t
}
