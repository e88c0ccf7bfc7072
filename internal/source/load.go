package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"idb-monitor/internal/survey"
)

// Dataset names, also used as cache file names.
const (
	FieldDataset = "field"
	BOQDataset   = "boq"
)

// Sources locates the two datasets. Fallbacks may be URLs or file paths.
type Sources struct {
	FieldURL      string
	FieldFallback string
	BOQURL        string
	BOQFallback   string
}

// Load fetches the field and BOQ datasets concurrently and builds a Dataset.
// Either dataset failing fails the whole load.
func Load(ctx context.Context, c *Client, src Sources, classifier survey.Classifier) (*survey.Dataset, error) {
	var (
		field []survey.FieldRecord
		boq   []survey.BOQRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, origin, err := c.FetchWithFallback(gctx, FieldDataset, src.FieldURL, src.FieldFallback)
		if err != nil {
			return err
		}
		field, err = survey.DecodeFieldRecords(data)
		if err != nil {
			return fmt.Errorf("%s: %w", origin, err)
		}
		return nil
	})

	g.Go(func() error {
		data, origin, err := c.FetchWithFallback(gctx, BOQDataset, src.BOQURL, src.BOQFallback)
		if err != nil {
			return err
		}
		boq, err = survey.DecodeBOQRecords(data)
		if err != nil {
			return fmt.Errorf("%s: %w", origin, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}

	log.Info().Int("field", len(field)).Int("boq", len(boq)).Msg("Datasets fetched")
	return survey.NewDataset(field, boq, classifier), nil
}
