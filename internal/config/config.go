package config

import (
	"os"
	"path"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	JwtTTLHours    int      `yaml:"jwt_ttl_hours"`
	ExcerptLength  int      `yaml:"excerpt_length"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLHours) * time.Hour
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, applies
// environment overrides for deploy-time values and fills in defaults.
// Panics on malformed config, which is the desired behavior at startup.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Public.Port = p
		}
	}
	if key := os.Getenv("EDUBLOG_JWT_KEY"); key != "" {
		c.Private.JwtKey = key
	}
	if pass := os.Getenv("EDUBLOG_PG_PASSWORD"); pass != "" {
		c.Private.Pg.Password = pass
	}
}

func (c *Config) applyDefaults() {
	if c.Public.Port == 0 {
		c.Public.Port = 5000
	}
	if c.Public.JwtTTLHours == 0 {
		c.Public.JwtTTLHours = 24
	}
	if c.Public.ExcerptLength == 0 {
		c.Public.ExcerptLength = 150
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}
