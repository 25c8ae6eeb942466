package nhs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"jobwatch/internal/domain"
	"jobwatch/internal/seen"

	"github.com/PuerkitoBio/goquery"
)

var testKeywords = []string{"junior clinical fellow", "junior doctor", "ct1"}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractJobID(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/candidate/jobadvert/ABC123", "ABC123"},
		{"/candidate/jobadvert/ABC123?keyword=doctor", "ABC123"},
		{"/candidate/jobadvert/ABC123/apply", "ABC123"},
		{"https://www.jobs.nhs.uk/candidate/jobadvert/C9999-25-0001", "C9999-25-0001"},
		{"/candidate/search/results", ""},
	}
	for _, tt := range tests {
		if got := ExtractJobID(tt.href); got != tt.want {
			t.Errorf("ExtractJobID(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

const detailFixture = `<html><body>
<h1>CT1 Trainee — Cardiology</h1>
<h3>Employer name</h3>
<p>NHS Trust Y</p>
<h3>Salary</h3>
<p>£35,000</p>
<h3>Main area</h3>
<p>Cardiology</p>
<h2>Job locations</h2>
<div>England</div>
<div>Leeds</div>
<h2>Job overview</h2>
<p>Some description text.</p>
</body></html>`

func TestParseDetails(t *testing.T) {
	rec := parseDetails(mustDoc(t, detailFixture))

	want := domain.JobRecord{
		Source:    "NHS",
		Title:     "CT1 Trainee — Cardiology",
		Employer:  "NHS Trust Y",
		Specialty: "Cardiology",
		Salary:    "£35,000",
		Location:  "England, Leeds",
	}
	if rec != want {
		t.Errorf("parseDetails = %+v, want %+v", rec, want)
	}
}

func TestParseDetailsMissingFields(t *testing.T) {
	rec := parseDetails(mustDoc(t, `<html><body><p>nothing useful here</p></body></html>`))

	if rec.Title != domain.NoTitle {
		t.Errorf("title = %q, want %q", rec.Title, domain.NoTitle)
	}
	for name, got := range map[string]string{
		"employer":  rec.Employer,
		"specialty": rec.Specialty,
		"salary":    rec.Salary,
		"location":  rec.Location,
	} {
		if got != domain.NotSpecified {
			t.Errorf("%s = %q, want %q", name, got, domain.NotSpecified)
		}
	}
}

func TestParseDetailsSingleLocationFragment(t *testing.T) {
	rec := parseDetails(mustDoc(t, `<html><body>
<h1>Junior Doctor</h1>
<h2>Job locations</h2>
<div>Leeds</div>
</body></html>`))

	if rec.Location != "Leeds" {
		t.Errorf("location = %q, want %q", rec.Location, "Leeds")
	}
}

func newFixtureServer(t *testing.T, detailStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/candidate/search/results", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<a href="/candidate/jobadvert/X1">CT1 Trainee — Cardiology</a>
<a href="/candidate/jobadvert/X2">Consultant Cardiologist</a>
<a href="/candidate/search/results?page=2">Next</a>
</body></html>`))
	})
	mux.HandleFunc("/candidate/jobadvert/X1", func(w http.ResponseWriter, r *http.Request) {
		if detailStatus != http.StatusOK {
			http.Error(w, "boom", detailStatus)
			return
		}
		_, _ = w.Write([]byte(detailFixture))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDedupIdempotent(t *testing.T) {
	srv := newFixtureServer(t, http.StatusOK)

	s := New(Config{
		BaseURL:    srv.URL,
		SearchURLs: []string{srv.URL + "/candidate/search/results?keyword=doctor"},
		Keywords:   testKeywords,
	})
	store := seen.Load(filepath.Join(t.TempDir(), "seen_jobs.json"))

	jobs, err := s.Fetch(context.Background(), store)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 new job, got %d", len(jobs))
	}
	if jobs[0].Record.Title != "CT1 Trainee — Cardiology" {
		t.Errorf("unexpected title: %q", jobs[0].Record.Title)
	}
	if !store.Has(seen.SourceNHS, "X1") {
		t.Errorf("X1 should be marked seen")
	}
	if store.Has(seen.SourceNHS, "X2") {
		t.Errorf("non-matching X2 should not be marked seen")
	}

	// unchanged fixtures: second run finds nothing new
	jobs, err = s.Fetch(context.Background(), store)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 new jobs on second run, got %d", len(jobs))
	}
}

func TestFetchDetailFailureNotMarkedSeen(t *testing.T) {
	srv := newFixtureServer(t, http.StatusInternalServerError)

	s := New(Config{
		BaseURL:    srv.URL,
		SearchURLs: []string{srv.URL + "/candidate/search/results"},
		Keywords:   testKeywords,
	})
	store := seen.Load(filepath.Join(t.TempDir(), "seen_jobs.json"))

	jobs, err := s.Fetch(context.Background(), store)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
	if store.Has(seen.SourceNHS, "X1") {
		t.Errorf("X1 must stay unseen so the next run retries it")
	}
}
