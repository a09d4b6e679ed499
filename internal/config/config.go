package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/codetaro/SigfoxDecoder/internal/options"
)

// EnvPrefix namespaces environment overrides, e.g. SIGFOX_OUTPUT_FORMAT.
const EnvPrefix = "SIGFOX"

type Config struct {
	Decoder DecoderConfig `mapstructure:"decoder"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type DecoderConfig struct {
	DownlinkData string `mapstructure:"downlink_data"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"downlink-data": "decoder.downlink_data",
	"output":        "output.format",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
}

// Load merges defaults, the optional YAML file at path, SIGFOX_*
// environment variables and any flags set on the command line.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("decoder.downlink_data", "payload")
	v.SetDefault("output.format", "json")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the decoder and CLI do not understand.
func (c *Config) Validate() error {
	if _, err := options.ParseDownlinkDataMode(c.Decoder.DownlinkData); err != nil {
		return err
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: output format %q (want json or yaml)", options.ErrInvalidOption, c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", options.ErrInvalidOption, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", options.ErrInvalidOption, c.Logging.Format)
	}
	return nil
}

// NewLogger builds a logrus logger from the logging section.
func (c LoggingConfig) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(c.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to 'info'", c.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
