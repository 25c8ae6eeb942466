package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		SeenFile string `yaml:"seen_file"`
	} `yaml:"app"`

	Scrape struct {
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		UserAgent      string   `yaml:"user_agent"`
		Keywords       []string `yaml:"keywords"`
	} `yaml:"scrape"`

	Sources struct {
		NHS struct {
			Enabled    bool     `yaml:"enabled"`
			BaseURL    string   `yaml:"base_url"`
			SearchURLs []string `yaml:"search_urls"`
		} `yaml:"nhs"`
		HealthJobsUK struct {
			Enabled bool   `yaml:"enabled"`
			BaseURL string `yaml:"base_url"`
			ListURL string `yaml:"list_url"`
		} `yaml:"healthjobsuk"`
	} `yaml:"sources"`

	Telegram struct {
		ChatID string `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// Default returns the built-in configuration: the junior-doctor keyword list
// and the live site URLs. A missing config file leaves behavior unchanged.
func Default() Config {
	var cfg Config

	cfg.App.SeenFile = "seen_jobs.json"

	cfg.Scrape.TimeoutSeconds = 20
	cfg.Scrape.UserAgent = "jobwatch/1.0 (+local)"
	cfg.Scrape.Keywords = []string{
		"junior clinical fellow",
		"junior doctor",
		"sho",
		"senior house officer",
		"f1",
		"foundation year 1",
		"f2",
		"foundation year 2",
		"f3",
		"foundation year 3",
		"ct1",
		"core trainee 1",
		"ct2",
		"core trainee 2",
		"st1",
		"specialty trainee 1",
		"st2",
		"specialty trainee 2",
		"trust grade",
	}

	cfg.Sources.NHS.Enabled = true
	cfg.Sources.NHS.BaseURL = "https://www.jobs.nhs.uk"
	cfg.Sources.NHS.SearchURLs = []string{
		"https://www.jobs.nhs.uk/candidate/search/results?keyword=Junior+clinical+fellow&language=en",
		"https://www.jobs.nhs.uk/candidate/search/results?keyword=junior+doctor&language=en",
	}

	cfg.Sources.HealthJobsUK.Enabled = true
	cfg.Sources.HealthJobsUK.BaseURL = "https://www.healthjobsuk.com"
	cfg.Sources.HealthJobsUK.ListURL = "https://www.healthjobsuk.com/job_list/s2"

	return cfg
}

// Load reads the YAML config at path over the defaults, then applies
// environment overrides. A missing file is not an error; malformed YAML is.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[config] could not read %s, using defaults: %v", path, err)
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		cfg.Telegram.ChatID = chatID
	}

	return cfg, nil
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Scrape.TimeoutSeconds) * time.Second
}
