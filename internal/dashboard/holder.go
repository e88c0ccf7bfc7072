package dashboard

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"idb-monitor/internal/survey"
)

// ErrNotLoaded is returned before the first successful load.
var ErrNotLoaded = errors.New("dataset not loaded")

// Loader produces a fresh dataset.
type Loader func(ctx context.Context) (*survey.Dataset, error)

// Holder publishes the current dataset to concurrent readers. A refresh builds
// a new dataset and swaps it in; readers keep whichever snapshot they loaded.
type Holder struct {
	current atomic.Pointer[survey.Dataset]
	load    Loader
}

// NewHolder creates a holder that refreshes through load.
func NewHolder(load Loader) *Holder {
	return &Holder{load: load}
}

// Current returns the latest dataset.
func (h *Holder) Current() (*survey.Dataset, error) {
	ds := h.current.Load()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return ds, nil
}

// Store publishes ds.
func (h *Holder) Store(ds *survey.Dataset) {
	h.current.Store(ds)
}

// Refresh loads a new dataset. On failure the previous dataset stays current.
func (h *Holder) Refresh(ctx context.Context) error {
	ds, err := h.load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Dataset refresh failed, keeping previous snapshot")
		return err
	}
	prev := h.current.Swap(ds)

	ev := log.Info().Str("load_id", ds.LoadID).Int("field", len(ds.Field)).Int("boq", len(ds.BOQ))
	if prev != nil {
		ev = ev.Str("previous", prev.LoadID)
	}
	ev.Msg("Dataset refreshed")
	return nil
}
