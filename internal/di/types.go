// Package di wires the application's dependencies into a single Container.
package di

import (
	"github.com/aristath/stockchart/internal/modules/charts"
	"github.com/aristath/stockchart/internal/modules/controls"
	"github.com/aristath/stockchart/internal/modules/dataset"
	"github.com/aristath/stockchart/internal/scheduler"
)

// Container holds all dependencies for the application.
// It is created by Wire() and handed to the server and cmd entry points.
type Container struct {
	Loader    *dataset.Loader
	Store     *dataset.Store
	Charts    *charts.Service
	Surface   *controls.Surface
	Scheduler *scheduler.Scheduler

	// ReloadJob is nil when no reload schedule is configured
	ReloadJob *dataset.ReloadJob
}
