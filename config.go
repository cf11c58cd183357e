package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SaveDirectory string            `yaml:"save_directory"`
	Confirmations bool              `yaml:"confirmations"`
	LogFile       string            `yaml:"log_file"`
	LogLevel      string            `yaml:"log_level"`
	CellWidth     int               `yaml:"cell_width"`
	CellHeight    int               `yaml:"cell_height"`
	ExportScale   float64           `yaml:"export_scale"`
	Labels        map[string]string `yaml:"labels"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		LogFile:       "",
		LogLevel:      "info",
		CellWidth:     DefaultCellWidth,
		CellHeight:    DefaultCellHeight,
		ExportScale:   1,
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".stormboard.yaml")
}

// loadConfig reads the config file at path. A missing file yields the
// defaults; a malformed one is an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return defaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	config.SaveDirectory = expandPath(config.SaveDirectory)
	config.LogFile = expandPath(config.LogFile)
	if config.CellWidth <= 0 {
		config.CellWidth = DefaultCellWidth
	}
	if config.CellHeight <= 0 {
		config.CellHeight = DefaultCellHeight
	}
	if config.ExportScale <= 0 {
		config.ExportScale = 1
	}
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
