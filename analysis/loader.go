package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"crime-analytics-api/models"
)

// ParseError reports structurally malformed upload content. Row-level
// problems (bad dates, zero coordinates) drop the row instead.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

var requiredColumns = []string{"AREA NAME", "Crm Cd Desc", "DATE OCC", "TIME OCC", "LAT", "LON"}

// DATE OCC arrives either with a (always-midnight) clock suffix or bare.
var dateLayouts = []string{"01/02/2006 03:04:05 PM", "01/02/2006"}

// LoadIncidents parses a CSV export of incident records and returns the
// normalized dataset. The canonical timestamp combines DATE OCC with the
// military TIME OCC field, which may lack leading zeros. Rows with a zero
// coordinate (the export's sentinel for unknown location), an unparseable
// date or time, or an empty description are dropped. Severity is not
// assigned here; see SeverityClassifier.
func LoadIncidents(r io.Reader) ([]models.Incident, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("cannot read CSV header: %v", err)}
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("missing required column %q", name)}
		}
	}

	var incidents []models.Incident
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("malformed CSV row: %v", err)}
		}
		if rec, ok := normalizeRow(row, col); ok {
			incidents = append(incidents, rec)
		}
	}

	return incidents, nil
}

func normalizeRow(row []string, col map[string]int) (models.Incident, bool) {
	desc := strings.TrimSpace(row[col["Crm Cd Desc"]])
	if desc == "" {
		return models.Incident{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[col["LAT"]]), 64)
	if err != nil || lat == 0 {
		return models.Incident{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[col["LON"]]), 64)
	if err != nil || lon == 0 {
		return models.Incident{}, false
	}

	occurred, ok := parseOccurrence(row[col["DATE OCC"]], row[col["TIME OCC"]])
	if !ok {
		return models.Incident{}, false
	}

	return models.Incident{
		Area:        strings.TrimSpace(row[col["AREA NAME"]]),
		Description: desc,
		OccurredAt:  occurred,
		Hour:        occurred.Hour(),
		Month:       int(occurred.Month()),
		DayOfWeek:   occurred.Weekday().String(),
		Lat:         lat,
		Lon:         lon,
	}, true
}

func parseOccurrence(dateStr, timeStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	var day time.Time
	parsed := false
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			day = t
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, false
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" || len(timeStr) > 4 {
		return time.Time{}, false
	}
	// Military time without leading zeros: "430" means 04:30.
	timeStr = strings.Repeat("0", 4-len(timeStr)) + timeStr

	hour, err := strconv.Atoi(timeStr[:2])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(timeStr[2:])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, false
	}

	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
}
