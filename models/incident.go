package models

import "time"

// Severity tiers assigned from the crime description.
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// Incident is one normalized crime record. Records are immutable after
// loading; analytical code shares them freely without copying.
type Incident struct {
	Area        string    `json:"area"`
	Description string    `json:"crime"`
	OccurredAt  time.Time `json:"occurred_at"`
	Hour        int       `json:"hour"`
	Month       int       `json:"month"`
	DayOfWeek   string    `json:"day_of_week"`
	Severity    string    `json:"severity"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
}

// Date returns the calendar-day bucket key of the incident.
func (i Incident) Date() string {
	return i.OccurredAt.Format("2006-01-02")
}
