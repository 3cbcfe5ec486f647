// Package config loads the service configuration from a YAML file with
// environment variable overrides (AUTHFRONT_*).
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Gateway struct {
		// BaseURL of the auth gateway, e.g. http://localhost:8080
		BaseURL string `yaml:"base_url"`
	} `yaml:"gateway"`

	Storage struct {
		// Kind selects the session backend: file | memory | redis
		Kind string `yaml:"kind"`
		File struct {
			Dir string `yaml:"dir"`
		} `yaml:"file"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"storage"`
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist), applies defaults and then env overrides.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, err
			}
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Gateway.BaseURL == "" {
		c.Gateway.BaseURL = "http://localhost:8080"
	}
	if c.Storage.Kind == "" {
		c.Storage.Kind = "file"
	}
	if c.Storage.File.Dir == "" {
		c.Storage.File.Dir = defaultSessionDir()
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = "localhost:6379"
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "authfront"
	}

	applyEnv(&c)
	return &c, nil
}

func applyEnv(c *Config) {
	if v, ok := getEnvStr("AUTHFRONT_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("AUTHFRONT_LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}
	if v, ok := getEnvStr("AUTHFRONT_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("AUTHFRONT_CORS_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("AUTHFRONT_GATEWAY_URL"); ok {
		c.Gateway.BaseURL = v
	}
	if v, ok := getEnvStr("AUTHFRONT_STORAGE_KIND"); ok {
		c.Storage.Kind = v
	}
	if v, ok := getEnvStr("AUTHFRONT_STORAGE_DIR"); ok {
		c.Storage.File.Dir = v
	}
	if v, ok := getEnvStr("AUTHFRONT_REDIS_ADDR"); ok {
		c.Storage.Redis.Addr = v
	}
	if v, ok := getEnvInt("AUTHFRONT_REDIS_DB"); ok {
		c.Storage.Redis.DB = v
	}
	if v, ok := getEnvStr("AUTHFRONT_REDIS_PREFIX"); ok {
		c.Storage.Redis.Prefix = v
	}
}

// defaultSessionDir places the file backend under the user config dir,
// falling back to a local directory when none is available.
func defaultSessionDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return base + string(os.PathSeparator) + "authfront" + string(os.PathSeparator) + "session"
	}
	return ".authfront/session"
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getEnvCSV(key string) ([]string, bool) {
	v := os.Getenv(key)
	if v == "" {
		return nil, false
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}
