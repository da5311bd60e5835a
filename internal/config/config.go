package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"leeter/internal/journal"
	"leeter/internal/mission"
)

const DefaultPath = "leeter.yaml"

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Logs     LogsConfig     `yaml:"logs"`
	Missions MissionsConfig `yaml:"missions"`
	Brief    BriefConfig    `yaml:"brief"`
	Database DatabaseConfig `yaml:"database"`
}

type LogsConfig struct {
	Dir            string   `yaml:"dir" env:"LEETER_LOG_DIR"`
	Pattern        string   `yaml:"pattern" env:"LEETER_LOG_PATTERN"`
	EventBlacklist []string `yaml:"event_blacklist"`
}

type MissionsConfig struct {
	DuplicatePolicy string `yaml:"duplicate_policy" env:"LEETER_DUPLICATE_POLICY"`
}

type BriefConfig struct {
	Blacklist []string `yaml:"blacklist"`
	Dedupe    []string `yaml:"dedupe"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"LEETER_DATABASE_DSN"`
}

// Default is the configuration used when no project file exists.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Project: "leeter",
		Version: 1,
		Logs: LogsConfig{
			Dir:            "./logs",
			Pattern:        journal.DefaultPattern,
			EventBlacklist: append([]string(nil), journal.DefaultBlacklist...),
		},
		Missions: MissionsConfig{DuplicatePolicy: string(mission.DuplicateFail)},
		Brief: BriefConfig{
			Blacklist: []string{"ReceiveText", "FSSSignalDiscovered"},
			Dedupe:    []string{"Scan", "ShipTargeted"},
		},
	}
}

// LoadProjectConfig reads a project file. Keys missing from the file keep
// their default values, except version which the file must state.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg := Default()
	cfg.Version = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := finish(cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return cfg, nil
}

// Load reads path when it exists. A missing file falls back to Default
// unless the caller named the file explicitly.
func Load(path string, explicit bool) (*ProjectConfig, error) {
	if path == "" {
		path = DefaultPath
	}
	_, err := os.Stat(path)
	if err == nil || explicit || !errors.Is(err, fs.ErrNotExist) {
		return LoadProjectConfig(path)
	}

	cfg := Default()
	if err := finish(cfg); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}
	return cfg, nil
}

func finish(cfg *ProjectConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return validateProjectConfig(cfg)
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Logs.Dir) == "" {
		return fmt.Errorf("logs dir is required")
	}
	if _, err := mission.ParseDuplicatePolicy(cfg.Missions.DuplicatePolicy); err != nil {
		return err
	}
	if cfg.Database.DSN != "" {
		if _, err := DSNScheme(cfg.Database.DSN); err != nil {
			return err
		}
	}
	return nil
}

// DuplicatePolicy returns the validated mission duplicate policy.
func (c *ProjectConfig) DuplicatePolicy() mission.DuplicatePolicy {
	policy, err := mission.ParseDuplicatePolicy(c.Missions.DuplicatePolicy)
	if err != nil {
		return mission.DuplicateFail
	}
	return policy
}

// DSNScheme returns "sqlite" or "postgres" for a supported database DSN.
func DSNScheme(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database dsn: %q", dsn)
	}
}

// Starter renders a project file for leeter init.
func Starter(project string) ([]byte, error) {
	cfg := Default()
	if strings.TrimSpace(project) != "" {
		cfg.Project = project
	}
	cfg.Database.DSN = "sqlite://./leeter.db"
	return yaml.Marshal(cfg)
}
