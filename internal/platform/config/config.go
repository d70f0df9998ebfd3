package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional config.yaml inside the data directory. Flags
// always win over file values.
type fileConfig struct {
	ExportDir      string `yaml:"export_dir"`
	FeedbackPlugin string `yaml:"feedback_plugin"`
}

type Config struct {
	DataPath       string
	DBPath         string
	ExportDir      string
	FeedbackPlugin string
}

func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath:  dataPath,
		DBPath:    filepath.Join(dataPath, "passby.db"),
		ExportDir: filepath.Join(dataPath, "exports"),
	}

	raw, err := os.ReadFile(filepath.Join(dataPath, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}
	if file.ExportDir != "" {
		cfg.ExportDir = file.ExportDir
		if !filepath.IsAbs(cfg.ExportDir) {
			cfg.ExportDir = filepath.Join(dataPath, cfg.ExportDir)
		}
	}
	if file.FeedbackPlugin != "" {
		cfg.FeedbackPlugin = file.FeedbackPlugin
		if !filepath.IsAbs(cfg.FeedbackPlugin) {
			cfg.FeedbackPlugin = filepath.Join(dataPath, cfg.FeedbackPlugin)
		}
	}
	return cfg, nil
}
