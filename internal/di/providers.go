package di

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/saadjs/gymbro/internal/compress"
	"github.com/saadjs/gymbro/internal/config"
	"github.com/saadjs/gymbro/internal/offline"
	"github.com/saadjs/gymbro/internal/provider/openfoodfacts"
	"github.com/saadjs/gymbro/internal/provider/wger"
	"github.com/saadjs/gymbro/internal/server"
	"github.com/saadjs/gymbro/internal/service"
)

const memoTTLSeconds = 600

// Registry carries the metrics registry as its two halves. Both are nil
// when metrics are disabled.
type Registry struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func ProvideRegistry(conf *config.Config) Registry {
	if !conf.Metrics.Enabled {
		return Registry{}
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return Registry{Registerer: reg, Gatherer: reg}
}

func ProvideGatherer(r Registry) prometheus.Gatherer {
	return r.Gatherer
}

func ProvideOfflineMetrics(r Registry) offline.Metrics {
	return offline.NewMetrics(r.Registerer)
}

func ProvideServerMetrics(r Registry) server.Metrics {
	return server.NewMetrics(r.Registerer)
}

func ProvideCodec() (compress.Codec, error) {
	codec, err := compress.NewZstdCodec()
	if err != nil {
		return nil, err
	}
	return codec, nil
}

func ProvideCacheStore(sqldb *sql.DB, codec compress.Codec) offline.Store {
	return offline.NewSQLStore(sqldb, codec)
}

func ProvideFetcher(conf *config.Config) (*offline.Fetcher, error) {
	if strings.TrimSpace(conf.Serve.Origin) == "" {
		return nil, errors.New("serve.origin is required (the web app the cache sits in front of)")
	}
	return offline.NewFetcher(conf.Serve.Origin, nil)
}

func ProvideOfflineOptions(conf *config.Config) offline.Options {
	return offline.Options{
		Version:    conf.Offline.Version,
		OfflineURL: conf.Offline.OfflineURL,
		Precache:   conf.Offline.Precache,
	}
}

func ProvideFoodSearcher(conf *config.Config) service.FoodSearcher {
	return &openfoodfacts.Client{BaseURL: conf.Lookup.FoodBaseURL}
}

func ProvideExerciseSearcher(conf *config.Config) service.ExerciseSearcher {
	return &wger.Client{BaseURL: conf.Lookup.ExerciseBaseURL}
}

func ProvideMemo(conf *config.Config) server.Memo {
	return server.NewMemo(conf.Lookup.CacheMB, memoTTLSeconds)
}

// OfflineSet builds the offline cache from config, the database and a logger.
var OfflineSet = wire.NewSet(
	ProvideRegistry,
	ProvideOfflineMetrics,
	ProvideCodec,
	ProvideCacheStore,
	ProvideFetcher,
	ProvideOfflineOptions,
	offline.New,
)
