package nhs

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jobwatch/internal/domain"
	"jobwatch/internal/scrape/util"
	"jobwatch/internal/seen"

	"github.com/PuerkitoBio/goquery"
)

const advertMarker = "/candidate/jobadvert/"

type Config struct {
	BaseURL    string // prefix for relative job links
	SearchURLs []string
	Keywords   []string
	UserAgent  string
	Timeout    time.Duration
}

type Scraper struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.jobs.nhs.uk"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jobwatch/1.0 (+local)"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *Scraper) Name() string { return seen.SourceNHS }

// Fetch walks the configured search pages in order. A search page that fails
// to load is logged and skipped; a detail page that fails to load skips that
// one job without marking it seen, so it is retried on the next run.
func (s *Scraper) Fetch(ctx context.Context, store *seen.Store) ([]domain.NewJob, error) {
	var out []domain.NewJob

	for _, searchURL := range s.cfg.SearchURLs {
		doc, err := s.getDoc(ctx, searchURL)
		if err != nil {
			log.Printf("[nhs] search fetch failed: %v", err)
			continue
		}

		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if !strings.Contains(href, advertMarker) {
				return
			}

			jobID := ExtractJobID(href)
			if jobID == "" {
				return
			}
			if store.Has(seen.SourceNHS, jobID) {
				return
			}
			if !util.MatchesKeyword(s.cfg.Keywords, util.CleanText(a.Text())) {
				return
			}

			fullURL := href
			if !strings.HasPrefix(href, "http") {
				fullURL = s.cfg.BaseURL + href
			}

			rec, err := s.fetchDetails(ctx, fullURL)
			if err != nil {
				log.Printf("[nhs] job detail fetch failed: %v", err)
				return
			}

			store.Add(seen.SourceNHS, jobID)
			out = append(out, domain.NewJob{URL: fullURL, Record: rec})
		})
	}

	return out, nil
}

// ExtractJobID returns the path segment after /candidate/jobadvert/, stopping
// at the next slash or query string. Empty means the link is not a job advert.
func ExtractJobID(href string) string {
	i := strings.Index(href, advertMarker)
	if i < 0 {
		return ""
	}
	id := href[i+len(advertMarker):]
	if j := strings.IndexAny(id, "/?"); j >= 0 {
		id = id[:j]
	}
	return id
}

func (s *Scraper) fetchDetails(ctx context.Context, jobURL string) (domain.JobRecord, error) {
	doc, err := s.getDoc(ctx, jobURL)
	if err != nil {
		return domain.JobRecord{}, err
	}
	return parseDetails(doc), nil
}

// parseDetails extracts the display fields by heading-relative sibling
// scanning: find the labeled heading, then read forward through its siblings
// until the next heading of the same family.
func parseDetails(doc *goquery.Document) domain.JobRecord {
	rec := domain.JobRecord{
		Source:    "NHS",
		Title:     domain.NoTitle,
		Employer:  domain.NotSpecified,
		Specialty: domain.NotSpecified,
		Salary:    domain.NotSpecified,
		Location:  domain.NotSpecified,
	}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		rec.Title = util.CleanText(h1.Text())
	}

	if v := headingValue(doc, "h2,h3", "Employer name", "h2", "h3"); v != "" {
		rec.Employer = v
	}
	if v := headingValue(doc, "h3,h4", "Salary", "h2", "h3", "h4"); v != "" {
		rec.Salary = v
	}
	if v := headingValue(doc, "h3,h4", "Main area", "h2", "h3", "h4"); v != "" {
		rec.Specialty = v
	}

	// Job locations can list several fragments; keep the last two, which on
	// these pages are the region and the town.
	parts := headingParts(doc, "h2,h3", "Job locations", 4, "h2", "h3")
	switch {
	case len(parts) >= 2:
		rec.Location = parts[len(parts)-2] + ", " + parts[len(parts)-1]
	case len(parts) == 1:
		rec.Location = parts[0]
	}

	return rec
}

func headingValue(doc *goquery.Document, findSel, label string, stopTags ...string) string {
	parts := headingParts(doc, findSel, label, 1, stopTags...)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// headingParts locates the first heading matching findSel whose text contains
// label, then collects non-empty sibling text until a stop tag or the limit.
func headingParts(doc *goquery.Document, findSel, label string, limit int, stopTags ...string) []string {
	stop := make(map[string]bool, len(stopTags))
	for _, t := range stopTags {
		stop[t] = true
	}

	var parts []string
	doc.Find(findSel).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(h.Text(), label) {
			return true
		}
		for sib := h.Next(); sib.Length() > 0; sib = sib.Next() {
			if stop[goquery.NodeName(sib)] {
				break
			}
			if txt := util.CleanText(sib.Text()); txt != "" {
				parts = append(parts, txt)
				if len(parts) >= limit {
					break
				}
			}
		}
		return false
	})
	return parts
}

func (s *Scraper) getDoc(ctx context.Context, u string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("get %s: status %d", u, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u, err)
	}
	return doc, nil
}
