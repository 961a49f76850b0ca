package analysis

import (
	"strings"

	"crime-analytics-api/models"
)

// SeverityTier pairs a tier name with the keywords that select it.
type SeverityTier struct {
	Name     string
	Keywords []string
}

// SeverityClassifier assigns a tier from ordered keyword lists. Matching is
// case-insensitive substring, first tier wins. The keyword lists are plain
// data so deployments can swap the policy without touching code.
type SeverityClassifier struct {
	Tiers   []SeverityTier
	Default string
}

func DefaultSeverityClassifier() SeverityClassifier {
	return SeverityClassifier{
		Tiers: []SeverityTier{
			{Name: models.SeverityHigh, Keywords: []string{"HOMICIDE", "ROBBERY", "ASSAULT", "WEAPON"}},
			{Name: models.SeverityMedium, Keywords: []string{"BURGLARY", "THEFT", "VEHICLE STOLEN"}},
		},
		Default: models.SeverityLow,
	}
}

// Classify returns the tier for a crime description.
func (c SeverityClassifier) Classify(description string) string {
	upper := strings.ToUpper(description)
	for _, tier := range c.Tiers {
		for _, keyword := range tier.Keywords {
			if strings.Contains(upper, keyword) {
				return tier.Name
			}
		}
	}
	return c.Default
}

// Apply tags every record in place. No records are dropped.
func (c SeverityClassifier) Apply(records []models.Incident) {
	for i := range records {
		records[i].Severity = c.Classify(records[i].Description)
	}
}
