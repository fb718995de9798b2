package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "GYMBRO"

type Remote struct {
	URL         string `mapstructure:"url"`
	AnonKey     string `mapstructure:"anonKey"`
	AccessToken string `mapstructure:"accessToken"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic,disabled"`
}

type Lookup struct {
	FoodBaseURL     string `mapstructure:"foodBaseURL" validate:"required|fullUrl"`
	ExerciseBaseURL string `mapstructure:"exerciseBaseURL" validate:"required|fullUrl"`
	CacheMB         int    `mapstructure:"cacheMB" validate:"min:0"`
}

type Serve struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	Origin         string   `mapstructure:"origin"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type Offline struct {
	Version    string   `mapstructure:"version" validate:"required"`
	OfflineURL string   `mapstructure:"offlineURL" validate:"required"`
	Precache   []string `mapstructure:"precache"`
}

type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Remote  Remote  `mapstructure:"remote"`
	Log     Log     `mapstructure:"log"`
	Lookup  Lookup  `mapstructure:"lookup"`
	Serve   Serve   `mapstructure:"serve"`
	Offline Offline `mapstructure:"offline"`
	Metrics Metrics `mapstructure:"metrics"`

	// Path is the config file that was read, empty when none was found.
	Path string `mapstructure:"-"`
}

// RemoteConfigured reports whether both the backend endpoint and key are
// present. Missing values select local-only mode rather than failing.
func (c *Config) RemoteConfigured() bool {
	return strings.TrimSpace(c.Remote.URL) != "" && strings.TrimSpace(c.Remote.AnonKey) != ""
}

// Load reads defaults, an optional YAML file, a .env file in the working
// directory and the environment, in increasing order of precedence.
// An explicit path must exist; a missing default path is ignored.
func Load(path string, explicit bool) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("remote.url", envPrefix+"_REMOTE_URL", "SUPABASE_URL", "VITE_SUPABASE_URL")
	_ = v.BindEnv("remote.anonKey", envPrefix+"_REMOTE_ANONKEY", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")
	_ = v.BindEnv("remote.accessToken", envPrefix+"_REMOTE_ACCESSTOKEN", "SUPABASE_ACCESS_TOKEN")
	_ = v.BindEnv("log.level", envPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("serve.addr", envPrefix+"_SERVE_ADDR")
	_ = v.BindEnv("serve.origin", envPrefix+"_SERVE_ORIGIN")
	_ = v.BindEnv("offline.version", envPrefix+"_OFFLINE_VERSION")

	readPath := ""
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		err := v.ReadInConfig()
		switch {
		case err == nil:
			readPath = path
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Path = readPath

	if err := Validate(&conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks every section of the config and reports the first failure.
func Validate(conf *Config) error {
	sections := []struct {
		name  string
		value any
	}{
		{"log", &conf.Log},
		{"lookup", &conf.Lookup},
		{"serve", &conf.Serve},
		{"offline", &conf.Offline},
	}
	for _, s := range sections {
		v := validate.Struct(s.value)
		if !v.Validate() {
			return fmt.Errorf("invalid %s config: %s", s.name, v.Errors.One())
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("lookup.foodBaseURL", "https://world.openfoodfacts.org")
	v.SetDefault("lookup.exerciseBaseURL", "https://wger.de")
	v.SetDefault("lookup.cacheMB", 8)
	v.SetDefault("serve.addr", "127.0.0.1:8787")
	v.SetDefault("serve.origin", "http://127.0.0.1:5173")
	v.SetDefault("serve.allowedOrigins", []string{"*"})
	v.SetDefault("offline.version", "gymbro-cache-v2")
	v.SetDefault("offline.offlineURL", "/index.html")
	v.SetDefault("offline.precache", []string{
		"/",
		"/index.html",
		"/manifest.json",
		"/icons/192x192.png",
		"/icons/512x512.png",
	})
	v.SetDefault("metrics.enabled", true)
}
