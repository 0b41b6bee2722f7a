package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the optional beanclass config file. Values only apply to flags
// that were not set explicitly on the command line.
type Config struct {
	ArtifactsDir  string `yaml:"artifacts_dir"`
	Pipeline      string `yaml:"pipeline"`
	LabelEncoder  string `yaml:"label_encoder"`
	InputName     string `yaml:"input_name"`
	OutputName    string `yaml:"output_name"`
	ORTLibrary    string `yaml:"ort_library"`
	ServerAddress string `yaml:"server_address"`
	CacheSize     *int64 `yaml:"cache_size"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "beanclass", "config.yaml")
}

// LoadConfig reads path, or the default location when path is empty. A
// missing default file yields a zero Config; a missing explicit file is an
// error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func applyArtifactConfig(c *cli.Command, cfg Config) {
	if cfg.ArtifactsDir != "" && !c.IsSet("artifacts-dir") {
		artifactsDir = cfg.ArtifactsDir
	}
	if cfg.Pipeline != "" && !c.IsSet("pipeline") {
		pipelinePath = cfg.Pipeline
	}
	if cfg.LabelEncoder != "" && !c.IsSet("label-encoder") {
		labelEncoderPath = cfg.LabelEncoder
	}
	if cfg.InputName != "" && !c.IsSet("input-name") {
		inputName = cfg.InputName
	}
	if cfg.OutputName != "" && !c.IsSet("output-name") {
		outputName = cfg.OutputName
	}
	if cfg.ORTLibrary != "" && !c.IsSet("ort-lib") {
		ortLibrary = cfg.ORTLibrary
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string, cacheSize *int64) {
	applyArtifactConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.CacheSize != nil && !c.IsSet("cache-size") {
		*cacheSize = *cfg.CacheSize
	}
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}
