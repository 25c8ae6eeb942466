package domain

// Placeholder values used when a field cannot be extracted from a detail page.
const (
	NotSpecified = "Not specified"
	NoTitle      = "No title"

	// DefaultTitle replaces an empty title just before notification.
	DefaultTitle = "New junior doctor role"
)

// JobRecord holds the display fields scraped from a job detail page. It is
// never persisted; it only exists to build one notification message.
type JobRecord struct {
	Source    string
	Title     string
	Employer  string
	Specialty string
	Salary    string
	Location  string
}

// NewJob pairs a detail-page URL with its extracted record.
type NewJob struct {
	URL    string
	Record JobRecord
}
