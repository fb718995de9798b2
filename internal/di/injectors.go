//go:build wireinject
// +build wireinject

package di

import (
	"database/sql"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/saadjs/gymbro/internal/config"
	"github.com/saadjs/gymbro/internal/offline"
	"github.com/saadjs/gymbro/internal/server"
)

func InitServer(conf *config.Config, sqldb *sql.DB, logger zerolog.Logger) (*server.Server, error) {
	wire.Build(
		OfflineSet,
		ProvideGatherer,
		ProvideServerMetrics,
		ProvideFoodSearcher,
		ProvideExerciseSearcher,
		ProvideMemo,
		server.New,
	)
	return nil, nil
}

func InitOfflineCache(conf *config.Config, sqldb *sql.DB, logger zerolog.Logger) (*offline.Cache, error) {
	wire.Build(OfflineSet)
	return nil, nil
}
