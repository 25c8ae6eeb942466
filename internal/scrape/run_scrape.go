package scrape

import (
	"context"
	"log"
	"strings"
	"time"

	"jobwatch/internal/config"
	"jobwatch/internal/domain"
	"jobwatch/internal/notify"
	"jobwatch/internal/scrape/healthjobsuk"
	"jobwatch/internal/scrape/nhs"
	"jobwatch/internal/scrape/types"
	"jobwatch/internal/seen"
)

// RunOnce performs one full scrape-and-notify cycle: each enabled source in
// order (NHS first), sequentially, then one notification per new job, then an
// unconditional seen-set save. Nothing here is fatal; every failure is logged
// and the run carries on.
func RunOnce(cfg config.Config, store *seen.Store, n notify.Notifier) int {
	parent := context.Background()

	var fetchers []types.Fetcher

	if cfg.Sources.NHS.Enabled {
		fetchers = append(fetchers, nhs.New(nhs.Config{
			BaseURL:    cfg.Sources.NHS.BaseURL,
			SearchURLs: cfg.Sources.NHS.SearchURLs,
			Keywords:   cfg.Scrape.Keywords,
			UserAgent:  cfg.Scrape.UserAgent,
			Timeout:    cfg.RequestTimeout(),
		}))
	}
	if cfg.Sources.HealthJobsUK.Enabled {
		fetchers = append(fetchers, healthjobsuk.New(healthjobsuk.Config{
			BaseURL:   cfg.Sources.HealthJobsUK.BaseURL,
			ListURL:   cfg.Sources.HealthJobsUK.ListURL,
			Keywords:  cfg.Scrape.Keywords,
			UserAgent: cfg.Scrape.UserAgent,
			Timeout:   cfg.RequestTimeout(),
		}))
	}

	var all []domain.NewJob
	for _, f := range fetchers {
		fctx, cancel := context.WithTimeout(parent, 5*time.Minute)
		log.Printf("[%s] Running...", f.Name())
		jobs, err := f.Fetch(fctx, store)
		cancel()
		if err != nil {
			// a dead listing page loses this source for the run, not the run
			log.Printf("[%s] error: %v", f.Name(), err)
		}
		all = append(all, jobs...)
	}

	if len(all) == 0 {
		log.Println("No new jobs this run.")
	}

	for _, j := range all {
		rec := j.Record
		if strings.TrimSpace(rec.Title) == "" {
			rec.Title = domain.DefaultTitle
		}
		log.Printf("Sending job: %s", rec.Title)
		if err := n.Send(notify.Format(j.URL, rec)); err != nil {
			// already marked seen, so a lost notification is never retried
			log.Printf("Telegram send failed: %v", err)
		}
	}

	if err := store.Save(); err != nil {
		log.Printf("[seen] save failed: %v", err)
	}

	return len(all)
}
