//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"babydbg/internal"
	"babydbg/internal/controllers"
	"babydbg/internal/offline"
	"babydbg/internal/providers"
	"babydbg/internal/services"
	"babydbg/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewStoreProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedStoreProvider,

		offline.NewZstdCompressor,
		offline.NewUpstreamFetcher,
		offline.NewPolicy,
		offline.NewSnapshotManager,
		offline.NewScheduler,
		services.NewDayService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
