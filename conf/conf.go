// Package conf loads the process configuration from YAML files and
// environment variables.
//
// Files are searched as gavel.yml in the working directory, ./conf and
// /etc/gavel. Environment variables use the GAVEL_ prefix with underscores
// for nesting, e.g. GAVEL_MONGO_URI overrides mongo.uri.
package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/server"
	"github.com/gavelhq/gavel/internal/server/digest"
	"github.com/gavelhq/gavel/internal/storage"
)

// Config is the root configuration.
type Config struct {
	APIServer server.Config  `conf:"server" yaml:"server" json:"server"`
	Mongo     storage.Config `conf:"mongo"  yaml:"mongo"  json:"mongo"`
	Log       log.Config     `conf:"log"    yaml:"log"    json:"log"`
	Digest    digest.Config  `conf:"digest" yaml:"digest" json:"digest"`
}

// Load reads configuration from files and environment.
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigName("gavel")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/gavel")

	v.SetEnvPrefix("GAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("conf: failed to read config file: %w", err)
		}
		// No file is fine; defaults and environment apply.
	}

	var config Config

	err := v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("conf: failed to unmarshal config: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.name", "gavel")
	v.SetDefault("server.base_path", "/")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.firm_header", "X-Gavel-Firm-Id")
	v.SetDefault("server.lawyer_header", "X-Gavel-Lawyer-Id")
	v.SetDefault("server.trace.trace_header", "X-Gavel-Trace-Id")
	v.SetDefault("server.trace.request_header", "X-Gavel-Request-Id")

	v.SetDefault("mongo.uri", storage.DefaultConfig().URI)
	v.SetDefault("mongo.database", storage.DefaultConfig().Database)
	v.SetDefault("mongo.connect_timeout", "10s")

	v.SetDefault("log.name", log.DefaultConfig().Name)
	v.SetDefault("log.level", log.DefaultConfig().Level)
	v.SetDefault("log.format", log.DefaultConfig().Format)
	v.SetDefault("log.output", log.DefaultConfig().Output)

	v.SetDefault("digest.cron", "0 6 * * *")
}
