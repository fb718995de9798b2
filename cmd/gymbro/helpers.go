package gymbro

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/app"
	"github.com/saadjs/gymbro/internal/config"
	"github.com/saadjs/gymbro/internal/db"
	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/logging"
	"github.com/saadjs/gymbro/internal/remote"
	"github.com/saadjs/gymbro/internal/service"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func loadConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.Load(configPath, true)
	}
	path, err := app.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path, false)
}

func newLogger(cmd *cobra.Command, conf *config.Config) zerolog.Logger {
	level := conf.Log.Level
	if strings.TrimSpace(logLevel) != "" {
		level = logLevel
	}
	return logging.New(level, cmd.ErrOrStderr())
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// env is everything a tracker command runs with.
type env struct {
	ctx     context.Context
	conf    *config.Config
	logger  zerolog.Logger
	db      *sql.DB
	store   *localstore.Store
	session service.Session
}

// withSession opens the database, loads config and binds the cached
// profile to the backend connection resolved from config.
func withSession(cmd *cobra.Command, run func(*env) error) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, conf)
	return withDB(func(sqldb *sql.DB) error {
		ctx := cmd.Context()
		store := localstore.Open(sqldb, logger)
		conn := remote.Resolve(conf.Remote.URL, conf.Remote.AnonKey, conf.Remote.AccessToken, nil)
		return run(&env{
			ctx:     ctx,
			conf:    conf,
			logger:  logger,
			db:      sqldb,
			store:   store,
			session: service.NewSession(ctx, store, conn, logger),
		})
	})
}

// parsePosition reads a 1-based list position as shown by list commands.
func parsePosition(value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("position must be > 0")
	}
	return v, nil
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// formatPercent renders a trend value, printing n/a for NaN and infinities.
func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", v)
}

func storageLabel(s service.Session) string {
	if service.ShouldUseRemote(s.Profile, s.Remote) {
		return "remote"
	}
	return "local"
}
