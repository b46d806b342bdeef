// Package config loads server settings. Defaults are overlaid by an optional
// YAML file (CONFIG_FILE), then by environment variables; the environment
// always wins.
package config

import (
    "fmt"
    "os"

    "gopkg.in/yaml.v3"
)

type Config struct {
    Port          string `yaml:"port"`
    DataDir       string `yaml:"data_dir"`
    APIKey        string `yaml:"api_key"`
    SigningSecret string `yaml:"signing_secret"`
    // Remote-config metadata served alongside the home payload
    LayoutVersion        string `yaml:"layout_version"`
    MinAppVersionAndroid string `yaml:"min_app_version_android"`
    MinAppVersionIOS     string `yaml:"min_app_version_ios"`
}

func Load() (*Config, error) {
    cfg := &Config{
        Port:                 "8080",
        DataDir:              "data",
        APIKey:               "dev-api-key-12345",
        LayoutVersion:        "1",
        MinAppVersionAndroid: "1",
        MinAppVersionIOS:     "1",
    }

    if path := os.Getenv("CONFIG_FILE"); path != "" {
        raw, err := os.ReadFile(path)
        if err != nil {
            return nil, fmt.Errorf("read config file: %w", err)
        }
        if err := yaml.Unmarshal(raw, cfg); err != nil {
            return nil, fmt.Errorf("parse config file: %w", err)
        }
    }

    cfg.Port = getenv("PORT", cfg.Port)
    cfg.DataDir = getenv("DATA_DIR", cfg.DataDir)
    cfg.APIKey = getenv("CONFIG_API_KEY", cfg.APIKey)
    cfg.SigningSecret = getenv("SIGNING_SECRET", cfg.SigningSecret)
    cfg.LayoutVersion = getenv("LAYOUT_VERSION", cfg.LayoutVersion)
    cfg.MinAppVersionAndroid = getenv("MIN_APP_VERSION_ANDROID", cfg.MinAppVersionAndroid)
    cfg.MinAppVersionIOS = getenv("MIN_APP_VERSION_IOS", cfg.MinAppVersionIOS)

    return cfg, nil
}

func getenv(key, fallback string) string {
    v := os.Getenv(key)
    if v == "" {
        return fallback
    }
    return v
}
