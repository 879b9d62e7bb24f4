package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/config"
	"github.com/aristath/stockchart/internal/modules/charts"
	"github.com/aristath/stockchart/internal/modules/controls"
	"github.com/aristath/stockchart/internal/modules/dataset"
)

// InitializeServices builds the store, the chart service and the control
// surface on top of an already configured loader
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.Store = dataset.NewStore(container.Loader, cfg.DataSource, log)

	opts := charts.DefaultOptions()
	opts.Width = cfg.ChartWidth
	opts.Height = cfg.ChartHeight
	container.Charts = charts.NewService(charts.NewRenderer(opts), log)

	container.Surface = controls.NewSurface(container.Store, container.Charts, log)
}
