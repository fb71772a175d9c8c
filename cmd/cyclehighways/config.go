package main

import (
	"strings"

	"github.com/LdDl/cyclehighways"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Augment cyclehighways.AugmentConfiguration `yaml:"augment" mapstructure:"augment"`
	Log     LogConfig                          `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

// LoadConfig reads optional 'cyclehighways.yaml' from working directory (or given file),
// then CYCLEHIGHWAYS_* environment variables, e.g. CYCLEHIGHWAYS_AUGMENT_AVERAGE_BIKE_SPEED
func LoadConfig(fname string) (*Config, error) {
	v := viper.New()

	// Config file
	if fname != "" {
		v.SetConfigFile(fname)
	} else {
		v.SetConfigName("cyclehighways")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("CYCLEHIGHWAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	defaults := cyclehighways.DefaultAugmentConfiguration()
	v.SetDefault("augment.average_bike_speed", defaults.AverageBikeSpeed)
	v.SetDefault("augment.cycle_highway_speed", defaults.CycleHighwaySpeed)
	v.SetDefault("augment.capacity", defaults.Capacity)
	v.SetDefault("augment.lanes", defaults.Lanes)
	v.SetDefault("augment.min_link_length", defaults.MinLinkLength)
	v.SetDefault("augment.duplicate_prefix", defaults.DuplicatePrefix)
	v.SetDefault("augment.bike_mode", defaults.BikeAgentType.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || fname != "" {
			return nil, errors.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: validate")
	}
	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return errors.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
