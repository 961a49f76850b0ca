package analysis

import (
	"errors"
	"strings"
	"testing"
)

const csvHeader = "AREA NAME,Crm Cd Desc,DATE OCC,TIME OCC,LAT,LON\n"

func TestLoadIncidentsNormalizesRow(t *testing.T) {
	input := csvHeader + `Central,BURGLARY,01/08/2020 12:00:00 AM,430,34.05,-118.25` + "\n"

	records, err := LoadIncidents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadIncidents() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Area != "Central" {
		t.Errorf("Area = %q, want %q", rec.Area, "Central")
	}
	if rec.Description != "BURGLARY" {
		t.Errorf("Description = %q, want %q", rec.Description, "BURGLARY")
	}
	if rec.Hour != 4 {
		t.Errorf("Hour = %d, want 4 (TIME OCC 430 means 04:30)", rec.Hour)
	}
	if rec.Month != 1 {
		t.Errorf("Month = %d, want 1", rec.Month)
	}
	if rec.DayOfWeek != "Wednesday" {
		t.Errorf("DayOfWeek = %q, want %q", rec.DayOfWeek, "Wednesday")
	}
	if rec.Date() != "2020-01-08" {
		t.Errorf("Date() = %q, want %q", rec.Date(), "2020-01-08")
	}
	if rec.Lat != 34.05 || rec.Lon != -118.25 {
		t.Errorf("coordinates = (%v, %v), want (34.05, -118.25)", rec.Lat, rec.Lon)
	}
}

func TestLoadIncidentsBareDateLayout(t *testing.T) {
	input := csvHeader + `Central,THEFT,03/15/2021,1205,34.1,-118.3` + "\n"

	records, err := LoadIncidents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadIncidents() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Hour != 12 {
		t.Errorf("Hour = %d, want 12", records[0].Hour)
	}
	if records[0].Month != 3 {
		t.Errorf("Month = %d, want 3", records[0].Month)
	}
}

func TestLoadIncidentsDropsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"zero latitude", `Central,BURGLARY,01/08/2020,430,0,-118.25`},
		{"zero longitude", `Central,BURGLARY,01/08/2020,430,34.05,0`},
		{"unparseable latitude", `Central,BURGLARY,01/08/2020,430,abc,-118.25`},
		{"unparseable date", `Central,BURGLARY,not-a-date,430,34.05,-118.25`},
		{"non-numeric time", `Central,BURGLARY,01/08/2020,4x0,34.05,-118.25`},
		{"time out of range", `Central,BURGLARY,01/08/2020,2560,34.05,-118.25`},
		{"empty description", `Central,,01/08/2020,430,34.05,-118.25`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := LoadIncidents(strings.NewReader(csvHeader + tt.row + "\n"))
			if err != nil {
				t.Fatalf("row-level problem should not fail the batch: %v", err)
			}
			if len(records) != 0 {
				t.Errorf("got %d records, want 0 (row should be dropped)", len(records))
			}
		})
	}
}

func TestLoadIncidentsKeepsValidAmongInvalid(t *testing.T) {
	input := csvHeader +
		`Central,BURGLARY,01/08/2020,430,0,-118.25` + "\n" +
		`Hollywood,ROBBERY,01/09/2020,1530,34.09,-118.33` + "\n" +
		`Central,VANDALISM,bad-date,900,34.05,-118.25` + "\n"

	records, err := LoadIncidents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadIncidents() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Area != "Hollywood" {
		t.Errorf("Area = %q, want %q", records[0].Area, "Hollywood")
	}
}

func TestLoadIncidentsMissingColumn(t *testing.T) {
	input := "AREA NAME,Crm Cd Desc,DATE OCC,TIME OCC,LAT\n" +
		`Central,BURGLARY,01/08/2020,430,34.05` + "\n"

	_, err := LoadIncidents(strings.NewReader(input))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if !strings.Contains(parseErr.Reason, "LON") {
		t.Errorf("error should name the missing column, got %q", parseErr.Reason)
	}
}

func TestLoadIncidentsMalformedCSV(t *testing.T) {
	input := csvHeader + `Central,"unclosed quote,01/08/2020,430,34.05,-118.25` + "\n"

	_, err := LoadIncidents(strings.NewReader(input))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError for malformed CSV, got %v", err)
	}
}

func TestLoadIncidentsIgnoresExtraColumns(t *testing.T) {
	input := "DR_NO,AREA NAME,Crm Cd Desc,DATE OCC,TIME OCC,LAT,LON,Status\n" +
		`1234,Central,BURGLARY,01/08/2020,430,34.05,-118.25,IC` + "\n"

	records, err := LoadIncidents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadIncidents() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}
