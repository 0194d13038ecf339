package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/metalagman/retailsim/internal/config"
)

// loadConfig reads the optional config file. A missing file falls back
// to defaults; a present but invalid file is an error. The raw file is
// schema-checked before decoding so flag-injected viper keys never leak
// into validation.
func loadConfig() (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		path = filepath.Join(".retailsim", "config.json")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	var settings map[string]any
	if err := json.Unmarshal(raw, &settings); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := config.ValidateSettings(settings); err != nil {
		return config.Config{}, err
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
