// Package config loads golden settings from defaults, an optional config
// file, .env files and GOLDEN_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/logging"
	"github.com/tsawler/golden/mask"
)

// EnvPrefix prefixes every environment override, e.g.
// GOLDEN_COMPARISON_POSITION_TOLERANCE_PX
const EnvPrefix = "GOLDEN"

// Report formats
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatYAML = "yaml"
)

// Config holds the application-level configuration
type Config struct {
	Comparison           ComparisonConfig `mapstructure:"comparison"`
	Workers              int              `mapstructure:"workers"`
	IncludeUnpairedPages bool             `mapstructure:"include_unpaired_pages"`
	Log                  LogConfig        `mapstructure:"log"`
	Mask                 MaskConfig       `mapstructure:"mask"`
	Store                StoreConfig      `mapstructure:"store"`
	Report               ReportConfig     `mapstructure:"report"`
}

// ComparisonConfig mirrors classify.Config with file-friendly names
type ComparisonConfig struct {
	TextSimilarityThreshold float64 `mapstructure:"text_similarity_threshold"`
	PositionTolerancePx     float64 `mapstructure:"position_tolerance_px"`
	IgnoreStyle             bool    `mapstructure:"ignore_style"`
	FontSizeTolerance       float64 `mapstructure:"font_size_tolerance"`
	StyleSeverity           float64 `mapstructure:"style_severity"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// MaskConfig selects the variable-content detector
type MaskConfig struct {
	Heuristics bool     `mapstructure:"heuristics"`
	Patterns   []string `mapstructure:"patterns"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	cmp := classify.DefaultConfig()
	v.SetDefault("comparison.text_similarity_threshold", cmp.TextSimilarityThreshold)
	v.SetDefault("comparison.position_tolerance_px", cmp.PositionTolerance)
	v.SetDefault("comparison.ignore_style", cmp.IgnoreStyle)
	v.SetDefault("comparison.font_size_tolerance", cmp.FontSizeTolerance)
	v.SetDefault("comparison.style_severity", cmp.StyleSeverity)
	v.SetDefault("workers", 0)
	v.SetDefault("include_unpaired_pages", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("mask.heuristics", false)
	v.SetDefault("mask.patterns", []string{})
	v.SetDefault("store.path", "")
	v.SetDefault("report.format", FormatText)
}

// Default returns the built-in configuration
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration. path names a YAML or JSON config file; when
// empty, golden.yaml in the working directory is used if present. envFiles
// are loaded into the process environment first without overriding
// variables already set; ".env" is used when none are given and missing
// files are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	if err := LoadEnv(envFiles...); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("golden")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads .env files into the process environment
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ClassifyConfig returns the classification thresholds
func (c Config) ClassifyConfig() classify.Config {
	return classify.Config{
		TextSimilarityThreshold: c.Comparison.TextSimilarityThreshold,
		PositionTolerance:       c.Comparison.PositionTolerancePx,
		IgnoreStyle:             c.Comparison.IgnoreStyle,
		FontSizeTolerance:       c.Comparison.FontSizeTolerance,
		StyleSeverity:           c.Comparison.StyleSeverity,
	}
}

// Validate checks values that cannot be checked by decoding
func (c Config) Validate() error {
	if err := c.ClassifyConfig().Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.Report.Format {
	case FormatText, FormatHTML, FormatYAML:
	default:
		return fmt.Errorf("unknown report format %q", c.Report.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Logger builds the configured logger
func (c Config) Logger() (*logrus.Logger, error) {
	return logging.New(logging.Options{Level: c.Log.Level, JSON: c.Log.JSON})
}

// Detector returns the configured variable-content detector, or nil when
// masking is off
func (c Config) Detector() (mask.Detector, error) {
	if !c.Mask.Heuristics && len(c.Mask.Patterns) == 0 {
		return nil, nil
	}
	return mask.NewHeuristic(c.Mask.Patterns...)
}
