package analysis

import (
	"reflect"
	"testing"

	"crime-analytics-api/models"
)

func filterFixture() []models.Incident {
	return []models.Incident{
		{Area: "Central", Description: "BURGLARY", Severity: models.SeverityMedium},
		{Area: "Central", Description: "ROBBERY", Severity: models.SeverityHigh},
		{Area: "Hollywood", Description: "BURGLARY", Severity: models.SeverityMedium},
		{Area: "Hollywood", Description: "VANDALISM", Severity: models.SeverityLow},
	}
}

func TestApplyFilterConjunctive(t *testing.T) {
	records := filterFixture()
	filtered := ApplyFilter(records, models.FilterPayload{
		Areas:      []string{"Central"},
		Crimes:     []string{"BURGLARY"},
		Severities: []string{models.SeverityMedium},
	})

	if len(filtered) != 1 {
		t.Fatalf("got %d records, want 1", len(filtered))
	}
	if filtered[0].Area != "Central" || filtered[0].Description != "BURGLARY" {
		t.Errorf("wrong record survived: %+v", filtered[0])
	}
}

func TestApplyFilterEmptySetMatchesNothing(t *testing.T) {
	records := filterFixture()
	filtered := ApplyFilter(records, models.FilterPayload{
		Areas:      []string{},
		Crimes:     []string{"BURGLARY"},
		Severities: []string{models.SeverityMedium},
	})

	if len(filtered) != 0 {
		t.Errorf("empty allowed-set must exclude everything, got %d records", len(filtered))
	}
}

func TestApplyFilterIdempotent(t *testing.T) {
	payload := models.FilterPayload{
		Areas:      []string{"Central", "Hollywood"},
		Crimes:     []string{"BURGLARY"},
		Severities: []string{models.SeverityMedium},
	}

	once := ApplyFilter(filterFixture(), payload)
	twice := ApplyFilter(once, payload)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering a filtered result changed it:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestApplyFilterPreservesOrder(t *testing.T) {
	records := filterFixture()
	filtered := ApplyFilter(records, models.FilterPayload{
		Areas:      []string{"Central", "Hollywood"},
		Crimes:     []string{"BURGLARY", "ROBBERY", "VANDALISM"},
		Severities: []string{models.SeverityLow, models.SeverityMedium, models.SeverityHigh},
	})

	if len(filtered) != len(records) {
		t.Fatalf("got %d records, want %d", len(filtered), len(records))
	}
	for i := range records {
		if filtered[i] != records[i] {
			t.Errorf("order not preserved at index %d", i)
		}
	}
}
