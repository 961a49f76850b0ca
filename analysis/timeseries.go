package analysis

import (
	"math"
	"sort"
	"time"

	"crime-analytics-api/models"

	"gonum.org/v1/gonum/stat"
)

// TimeSeriesPoint is a daily incident count; forecast points use the same
// shape with future dates.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

const dateLayout = "2006-01-02"

// DailyCounts buckets records by calendar day and returns the counts in
// chronological order.
func DailyCounts(records []models.Incident) []TimeSeriesPoint {
	buckets := make(map[string]int)
	for _, rec := range records {
		buckets[rec.Date()]++
	}

	points := make([]TimeSeriesPoint, 0, len(buckets))
	for date, count := range buckets {
		points = append(points, TimeSeriesPoint{Date: date, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// Forecast projects horizonDays of daily counts past the last observed day.
// The model is a least-squares linear trend plus the mean day-of-week
// residual, which captures the weekly rhythm crime counts typically show.
// Fewer than minPoints observed days yields an empty forecast, not an error.
func Forecast(counts []TimeSeriesPoint, horizonDays, minPoints int) []TimeSeriesPoint {
	if len(counts) < minPoints || len(counts) < 2 || horizonDays < 1 {
		return []TimeSeriesPoint{}
	}

	first, err := time.Parse(dateLayout, counts[0].Date)
	if err != nil {
		return []TimeSeriesPoint{}
	}
	last, err := time.Parse(dateLayout, counts[len(counts)-1].Date)
	if err != nil {
		return []TimeSeriesPoint{}
	}

	xs := make([]float64, len(counts))
	ys := make([]float64, len(counts))
	days := make([]time.Time, len(counts))
	for i, p := range counts {
		day, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return []TimeSeriesPoint{}
		}
		days[i] = day
		xs[i] = day.Sub(first).Hours() / 24
		ys[i] = float64(p.Count)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	// Mean residual per weekday over the observed history.
	residualSum := make([]float64, 7)
	residualN := make([]float64, 7)
	for i := range xs {
		wd := int(days[i].Weekday())
		residualSum[wd] += ys[i] - (alpha + beta*xs[i])
		residualN[wd]++
	}

	forecast := make([]TimeSeriesPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		day := last.AddDate(0, 0, i)
		x := day.Sub(first).Hours() / 24
		predicted := alpha + beta*x
		if wd := int(day.Weekday()); residualN[wd] > 0 {
			predicted += residualSum[wd] / residualN[wd]
		}
		forecast = append(forecast, TimeSeriesPoint{
			Date:  day.Format(dateLayout),
			Count: int(math.Max(0, math.Round(predicted))),
		})
	}
	return forecast
}
