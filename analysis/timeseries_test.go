package analysis

import (
	"testing"
	"time"

	"crime-analytics-api/models"
)

func dailyFixture(start string, countsPerDay []int) []models.Incident {
	day, _ := time.Parse("2006-01-02", start)
	var records []models.Incident
	for i, n := range countsPerDay {
		for j := 0; j < n; j++ {
			records = append(records, models.Incident{OccurredAt: day.AddDate(0, 0, i)})
		}
	}
	return records
}

func TestDailyCounts(t *testing.T) {
	records := dailyFixture("2020-01-08", []int{1, 3, 2})

	counts := DailyCounts(records)

	want := []TimeSeriesPoint{
		{Date: "2020-01-08", Count: 1},
		{Date: "2020-01-09", Count: 3},
		{Date: "2020-01-10", Count: 2},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d points, want %d", len(counts), len(want))
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestDailyCountsChronological(t *testing.T) {
	// Out-of-order records still bucket chronologically.
	day, _ := time.Parse("2006-01-02", "2020-03-01")
	records := []models.Incident{
		{OccurredAt: day.AddDate(0, 0, 5)},
		{OccurredAt: day},
		{OccurredAt: day.AddDate(0, 0, 2)},
	}

	counts := DailyCounts(records)
	for i := 1; i < len(counts); i++ {
		if counts[i-1].Date >= counts[i].Date {
			t.Errorf("counts not chronological at index %d: %s >= %s", i, counts[i-1].Date, counts[i].Date)
		}
	}
}

func TestForecastInsufficientHistory(t *testing.T) {
	counts := DailyCounts(dailyFixture("2020-01-01", []int{2, 3, 2, 4, 3}))

	forecast := Forecast(counts, 7, 14)

	if len(forecast) != 0 {
		t.Errorf("got %d forecast points, want 0 for insufficient history", len(forecast))
	}
}

func TestForecastHorizon(t *testing.T) {
	perDay := make([]int, 20)
	for i := range perDay {
		perDay[i] = 5 + i%3
	}
	counts := DailyCounts(dailyFixture("2020-01-01", perDay))

	forecast := Forecast(counts, 7, 14)

	if len(forecast) != 7 {
		t.Fatalf("got %d forecast points, want 7", len(forecast))
	}
	if forecast[0].Date != "2020-01-21" {
		t.Errorf("first forecast date = %s, want 2020-01-21", forecast[0].Date)
	}
	if forecast[6].Date != "2020-01-27" {
		t.Errorf("last forecast date = %s, want 2020-01-27", forecast[6].Date)
	}
	for _, p := range forecast {
		if p.Count < 0 {
			t.Errorf("forecast count %d on %s is negative", p.Count, p.Date)
		}
	}
}

func TestForecastFlatSeries(t *testing.T) {
	perDay := make([]int, 21)
	for i := range perDay {
		perDay[i] = 4
	}
	counts := DailyCounts(dailyFixture("2020-06-01", perDay))

	forecast := Forecast(counts, 7, 14)

	for _, p := range forecast {
		if p.Count != 4 {
			t.Errorf("flat history should forecast the same level, got %d on %s", p.Count, p.Date)
		}
	}
}

func TestForecastUpwardTrend(t *testing.T) {
	perDay := make([]int, 21)
	for i := range perDay {
		perDay[i] = 1 + i
	}
	counts := DailyCounts(dailyFixture("2020-06-01", perDay))

	forecast := Forecast(counts, 7, 14)

	last := counts[len(counts)-1].Count
	for _, p := range forecast {
		if p.Count <= last {
			t.Errorf("upward trend should project above the last observed count %d, got %d on %s", last, p.Count, p.Date)
		}
		last = p.Count
	}
}
