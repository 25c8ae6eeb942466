package notify

import (
	"strings"
	"testing"

	"jobwatch/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	rec := domain.JobRecord{
		Source:    "NHS",
		Title:     "CT1 Trainee — Cardiology",
		Employer:  "NHS Trust Y",
		Specialty: "Cardiology",
		Salary:    "£35,000",
		Location:  "England, Leeds",
	}

	got := Format("https://www.jobs.nhs.uk/candidate/jobadvert/X1", rec)

	want := strings.Join([]string{
		"New Job Found @ NHS",
		"",
		"Job Link (https://www.jobs.nhs.uk/candidate/jobadvert/X1)",
		"",
		"Title: CT1 Trainee — Cardiology",
		"Employer: NHS Trust Y",
		"Specialty: Cardiology",
		"Salary: £35,000",
		"Location: England, Leeds",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatFieldOrder(t *testing.T) {
	got := Format("http://x", domain.JobRecord{
		Source: "HealthJobsUK", Title: "a", Employer: "b", Specialty: "c", Salary: "d", Location: "e",
	})

	order := []string{"Title:", "Employer:", "Specialty:", "Salary:", "Location:"}
	last := -1
	for _, label := range order {
		i := strings.Index(got, label)
		assert.Greater(t, i, last, "field %s out of order", label)
		last = i
	}
}

func TestNewTelegramMissingCredentials(t *testing.T) {
	assert.IsType(t, Disabled{}, NewTelegram("", "123"))
	assert.IsType(t, Disabled{}, NewTelegram("token", ""))
	assert.IsType(t, Disabled{}, NewTelegram("token", "not-a-number"))

	// a disabled notifier drops the message without error
	assert.NoError(t, Disabled{}.Send("hello"))
}
