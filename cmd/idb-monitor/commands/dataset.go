package commands

import (
	"context"

	"idb-monitor/internal/config"
	"idb-monitor/internal/dashboard"
	"idb-monitor/internal/source"
	"idb-monitor/internal/survey"

	"github.com/rs/zerolog/log"
)

func newClassifier(cfg *config.AppConfig) survey.Classifier {
	if cfg.IssuePolicy == config.IssuePolicyGood {
		return survey.FixedClassifier(survey.IssueGood)
	}
	return survey.NewWeightedClassifier(cfg.IssueSeed)
}

func newLoader(cfg *config.AppConfig) dashboard.Loader {
	client := source.NewClient(cfg.FetchTimeout, cfg.CacheDir)
	classifier := newClassifier(cfg)
	return func(ctx context.Context) (*survey.Dataset, error) {
		return source.Load(ctx, client, cfg.Sources, classifier)
	}
}

// mustLoad performs the initial load. Without both datasets there is nothing to serve.
func mustLoad(ctx context.Context) *survey.Dataset {
	if err := holder.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load survey data")
	}
	ds, err := holder.Current()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load survey data")
	}
	return ds
}
