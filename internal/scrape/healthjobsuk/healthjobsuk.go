package healthjobsuk

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"jobwatch/internal/domain"
	"jobwatch/internal/scrape/util"
	"jobwatch/internal/seen"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const jobPrefix = "/job/UK/"

// Trac job URLs end in a numeric version suffix, e.g. .../some-title-v987654.
var versionRe = regexp.MustCompile(`-v(\d+)`)

type Config struct {
	BaseURL   string
	ListURL   string
	Keywords  []string
	UserAgent string
	Timeout   time.Duration
}

type Scraper struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.healthjobsuk.com"
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

func (s *Scraper) Name() string { return seen.SourceHealthJobsUK }

// Fetch scans the single listing page. A listing failure abandons this source
// for the run; a detail failure skips that one job without marking it seen.
func (s *Scraper) Fetch(ctx context.Context, store *seen.Store) ([]domain.NewJob, error) {
	doc, err := s.getDoc(ctx, s.cfg.ListURL)
	if err != nil {
		return nil, fmt.Errorf("list fetch: %w", err)
	}

	var out []domain.NewJob
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.HasPrefix(href, jobPrefix) {
			return
		}
		if !util.MatchesKeyword(s.cfg.Keywords, util.CleanText(a.Text())) {
			return
		}

		jobID := ExtractJobID(href)
		if store.Has(seen.SourceHealthJobsUK, jobID) {
			return
		}

		fullURL := s.cfg.BaseURL + href
		rec, err := s.fetchDetails(ctx, fullURL)
		if err != nil {
			log.Printf("[healthjobsuk] job detail fetch failed: %v", err)
			return
		}

		store.Add(seen.SourceHealthJobsUK, jobID)
		out = append(out, domain.NewJob{URL: fullURL, Record: rec})
	})

	return out, nil
}

// ExtractJobID returns the digits after -v, or the raw href when the link has
// no version suffix.
func ExtractJobID(href string) string {
	if m := versionRe.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return href
}

func (s *Scraper) fetchDetails(ctx context.Context, jobURL string) (domain.JobRecord, error) {
	doc, err := s.getDoc(ctx, jobURL)
	if err != nil {
		return domain.JobRecord{}, err
	}
	return parseDetails(doc), nil
}

// parseDetails reads the trac-style label/value markup: a text node that is
// exactly the label, with the value in the next non-empty sibling of its
// parent. Unlike the NHS pages there is no heading boundary to stop at.
func parseDetails(doc *goquery.Document) domain.JobRecord {
	rec := domain.JobRecord{
		Source:    "HealthJobsUK",
		Title:     domain.NoTitle,
		Employer:  domain.NotSpecified,
		Specialty: domain.NotSpecified,
		Salary:    domain.NotSpecified,
		Location:  domain.NotSpecified,
	}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		rec.Title = util.CleanText(h1.Text())
	} else if h2 := doc.Find("h2").First(); h2.Length() > 0 {
		rec.Title = util.CleanText(h2.Text())
	}

	if v := labelValue(doc, "Main area"); v != "" {
		rec.Specialty = v
	}
	if v := labelValue(doc, "Employer"); v != "" {
		rec.Employer = v
	}
	if v := labelValue(doc, "Salary"); v != "" {
		rec.Salary = v
	}
	if v := labelValue(doc, "Town"); v != "" {
		rec.Location = v
	}

	return rec
}

// labelValue finds the first element with a child text node whose trimmed
// content equals label, then returns the first non-empty sibling text of that
// element. Only the first label hit is considered, even if it has no value.
func labelValue(doc *goquery.Document, label string) string {
	var out string
	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !hasLabelTextNode(sel, label) {
			return true
		}
		for sib := sel.Next(); sib.Length() > 0; sib = sib.Next() {
			if txt := util.CleanText(sib.Text()); txt != "" {
				out = txt
				break
			}
		}
		return false
	})
	return out
}

func hasLabelTextNode(sel *goquery.Selection, label string) bool {
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.TrimSpace(c.Data) == label {
				return true
			}
		}
	}
	return false
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
