package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/config"
)

// Wire builds the full dependency graph. The dataset is not loaded yet;
// callers decide when to call Store.Reload.
func Wire(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	loader, err := InitializeSources(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sources: %w", err)
	}
	container.Loader = loader

	InitializeServices(container, cfg, log)

	if err := RegisterJobs(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	return container, nil
}
