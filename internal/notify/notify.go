package notify

import (
	"fmt"
	"strings"

	"jobwatch/internal/domain"
)

// Notifier delivers one formatted message per new job. Implementations never
// retry; a failed delivery is logged by the caller and the job stays seen.
type Notifier interface {
	Send(text string) error
}

// Format builds the fixed-field notification body.
func Format(jobURL string, rec domain.JobRecord) string {
	lines := []string{
		"New Job Found @ " + rec.Source,
		"",
		fmt.Sprintf("Job Link (%s)", jobURL),
		"",
		"Title: " + rec.Title,
		"Employer: " + rec.Employer,
		"Specialty: " + rec.Specialty,
		"Salary: " + rec.Salary,
		"Location: " + rec.Location,
	}
	return strings.Join(lines, "\n")
}

// Disabled stands in when credentials are missing: messages are dropped and
// the run still completes (and still updates the seen-set).
type Disabled struct{}

func (Disabled) Send(string) error { return nil }
