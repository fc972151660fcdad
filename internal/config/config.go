package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when --config is not provided
const DefaultConfigPath = "config.yaml"

type Config struct {
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
}

type DataConfig struct {
	Dir    string `yaml:"dir"`
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// Load builds the configuration from defaults, an optional YAML file at
// path, a .env file and the environment, in increasing priority.
// dataDir is the fallback data directory.
func Load(path, dataDir string) (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()

	cfg := &Config{
		Data: DataConfig{
			Dir: dataDir,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path == "" {
		path = os.Getenv("FORMSMITH_CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if dir := os.Getenv("FORMSMITH_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if dbPath := os.Getenv("FORMSMITH_DB_PATH"); dbPath != "" {
		cfg.Data.DBPath = dbPath
	}
	if level := os.Getenv("FORMSMITH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("FORMSMITH_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if file := os.Getenv("FORMSMITH_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	if c.Data.DBPath == "" {
		c.Data.DBPath = filepath.Join(c.Data.Dir, "formsmith.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.Data.Dir, "formsmith.log")
	}
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
