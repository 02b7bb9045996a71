package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL    string `yaml:"url"`
		Replay bool   `yaml:"replay"` // serve the newest archived set before generating
	} `yaml:"postgres"`
	Questions struct {
		URL string `yaml:"url"`
		TTL string `yaml:"ttl"`
	} `yaml:"questions"`
	Judge struct {
		URL string `yaml:"url"`
	} `yaml:"judge"`
	Auth struct {
		URL       string `yaml:"url"`
		StorePath string `yaml:"store_path"`
	} `yaml:"auth"`
	Game struct {
		QuestionsPerRound int `yaml:"questions_per_round"`
		TimePerQuestion   int `yaml:"time_per_question"`
	} `yaml:"game"`
}

// Load reads YAML config from path. A missing file yields a zero config so
// the demo mode runs without any setup.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty or
// invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
