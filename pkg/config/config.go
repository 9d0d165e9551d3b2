package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL   string        `yaml:"base_url"`
		Version   string        `yaml:"version"`
		Category  string        `yaml:"category"`
		YearFrom  int           `yaml:"year_from"`
		YearTo    int           `yaml:"year_to"`
		Limit     int           `yaml:"limit"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit float64       `yaml:"rate_limit"`
	} `yaml:"api"`

	Launcher struct {
		Program string   `yaml:"program"`
		Args    []string `yaml:"args"`
		// Probe is a command that exits 0 when the dependency is present.
		// When empty, Program is looked up on PATH instead.
		Probe   []string `yaml:"probe"`
		Install []string `yaml:"install"`
		Package string   `yaml:"package"`
		Pause   *bool    `yaml:"pause"`
	} `yaml:"launcher"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
	} `yaml:"database"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

const (
	DefaultBaseURL = "https://api.nobelprize.org"
	DefaultProgram = "nobel-fetcher"
	DefaultPackage = "github.com/xhad/nobel/cmd/nobel-fetcher@latest"
)

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/nobel/config.yaml"),
			"/etc/nobel/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.API.BaseURL == "" {
		config.API.BaseURL = DefaultBaseURL
	}
	if config.API.Version == "" {
		config.API.Version = "2.1"
	}
	if config.API.Category == "" {
		config.API.Category = "phy"
	}
	if config.API.YearFrom == 0 {
		config.API.YearFrom = 2000
	}
	if config.API.YearTo == 0 {
		config.API.YearTo = 2023
	}
	if config.API.Limit == 0 {
		config.API.Limit = 5000
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = 8 * time.Second
	}
	if config.API.RateLimit == 0 {
		config.API.RateLimit = 1.0
	}

	if config.Launcher.Program == "" {
		config.Launcher.Program = DefaultProgram
	}
	if len(config.Launcher.Install) == 0 {
		config.Launcher.Install = []string{"go", "install"}
	}
	if config.Launcher.Package == "" {
		config.Launcher.Package = DefaultPackage
	}
	if config.Launcher.Pause == nil {
		pause := runtime.GOOS == "windows"
		config.Launcher.Pause = &pause
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "laureates"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}

func mergeWithEnv(config *Config) {
	if baseURL := os.Getenv("NOBEL_API_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}

// PauseEnabled reports whether the launcher should hold the console open.
func (c *Config) PauseEnabled() bool {
	return c.Launcher.Pause != nil && *c.Launcher.Pause
}
