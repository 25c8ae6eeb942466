package config

import (
	"errors"
	"fmt"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.SeenFile == "" {
		errs = append(errs, "app.seen_file is required")
	}
	if cfg.Scrape.TimeoutSeconds <= 0 {
		errs = append(errs, "scrape.timeout_seconds must be > 0")
	}
	if len(cfg.Scrape.Keywords) == 0 {
		errs = append(errs, "scrape.keywords must have at least 1 term")
	}
	for i, k := range cfg.Scrape.Keywords {
		if k == "" {
			errs = append(errs, fmt.Sprintf("scrape.keywords[%d] cannot be empty", i))
		}
	}

	if cfg.Sources.NHS.Enabled {
		if cfg.Sources.NHS.BaseURL == "" {
			errs = append(errs, "sources.nhs.base_url is required when enabled")
		}
		if len(cfg.Sources.NHS.SearchURLs) == 0 {
			errs = append(errs, "sources.nhs.search_urls must have at least 1 URL when enabled")
		}
	}
	if cfg.Sources.HealthJobsUK.Enabled {
		if cfg.Sources.HealthJobsUK.BaseURL == "" {
			errs = append(errs, "sources.healthjobsuk.base_url is required when enabled")
		}
		if cfg.Sources.HealthJobsUK.ListURL == "" {
			errs = append(errs, "sources.healthjobsuk.list_url is required when enabled")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
