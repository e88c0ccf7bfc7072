package survey

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Dataset is the normalized, read-only pair of field and BOQ records for one load.
// A refresh produces a new Dataset; an existing one is never modified.
type Dataset struct {
	LoadID            string
	LoadedAt          time.Time
	Field             []FieldRecord
	BOQ               []BOQRecord
	SynthesizedIssues int
}

// Normalize annotates records in place with their vendor and, when missing,
// a classifier-assigned issue type. It returns the number of synthesized issues.
func Normalize(records []FieldRecord, c Classifier) int {
	synthesized := 0
	for i := range records {
		rec := &records[i]
		rec.VendorName = InferVendor(rec.User)
		if rec.IssueType == "" && c != nil {
			rec.IssueType = c.Classify(*rec)
			rec.IssueSynthesized = true
			synthesized++
		}
	}
	return synthesized
}

// NewDataset normalizes the field records and freezes both sets into a Dataset.
func NewDataset(field []FieldRecord, boq []BOQRecord, c Classifier) *Dataset {
	synthesized := Normalize(field, c)

	ds := &Dataset{
		LoadID:            uuid.NewString(),
		LoadedAt:          time.Now(),
		Field:             field,
		BOQ:               boq,
		SynthesizedIssues: synthesized,
	}

	log.Info().
		Str("load_id", ds.LoadID).
		Int("field", len(field)).
		Int("boq", len(boq)).
		Int("synthesized_issues", synthesized).
		Msg("Dataset normalized")

	return ds
}
