package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/config"
	"github.com/aristath/stockchart/internal/modules/dataset"
	"github.com/aristath/stockchart/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers the periodic dataset
// reload when a schedule is configured. The scheduler is not started here.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.Store == nil {
		return fmt.Errorf("container store cannot be nil")
	}

	container.Scheduler = scheduler.New(log)

	if cfg.ReloadSchedule == "" {
		log.Debug().Msg("No reload schedule configured")
		return nil
	}

	job := dataset.NewReloadJob(container.Store, cfg.FetchTimeout())
	if err := container.Scheduler.AddJob(cfg.ReloadSchedule, job); err != nil {
		return fmt.Errorf("failed to register %s job: %w", job.Name(), err)
	}
	container.ReloadJob = job

	return nil
}
