package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/config"
	"github.com/aristath/stockchart/internal/modules/dataset"
)

// InitializeSources creates the dataset loader and registers one source per
// supported locator scheme. The S3 client is only built when the configured
// locator actually points at a bucket.
func InitializeSources(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*dataset.Loader, error) {
	policy, err := dataset.ParseRowPolicy(cfg.RowPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse row policy: %w", err)
	}

	loader := dataset.NewLoader(policy, log)

	loader.Register("file", dataset.NewFileSource(log))

	// https locators resolve to the "http" scheme
	loader.Register("http", dataset.NewHTTPSource(&http.Client{Timeout: cfg.FetchTimeout()}, cfg.FetchTimeout(), log))

	loader.Register("sqlite", dataset.NewSQLiteSource(log))

	if dataset.Scheme(cfg.DataSource) == "s3" {
		client, err := dataset.NewS3Client(ctx, dataset.S3Config{
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Endpoint:        cfg.S3.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		loader.Register("s3", dataset.NewS3Source(client, log))
	}

	log.Debug().Strs("schemes", loader.Schemes()).Msg("Dataset sources registered")

	return loader, nil
}
