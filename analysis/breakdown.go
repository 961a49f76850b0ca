package analysis

import (
	"sort"

	"crime-analytics-api/models"
)

// PieChart is the overall severity distribution, labels aligned with values.
type PieChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// AreaSeverityRow is one grouped-bar row; tiers a given area never hit stay
// at zero rather than being omitted.
type AreaSeverityRow struct {
	Area   string `json:"area"`
	Low    int    `json:"Low"`
	Medium int    `json:"Medium"`
	High   int    `json:"High"`
}

type BreakdownResult struct {
	Pie PieChart          `json:"pie_chart"`
	Bar []AreaSeverityRow `json:"bar_chart"`
}

// SeverityBreakdown aggregates severity counts overall and per area.
func SeverityBreakdown(records []models.Incident) BreakdownResult {
	tierCounts := make(map[string]int)
	byArea := make(map[string]*AreaSeverityRow)

	for _, rec := range records {
		tierCounts[rec.Severity]++

		row, ok := byArea[rec.Area]
		if !ok {
			row = &AreaSeverityRow{Area: rec.Area}
			byArea[rec.Area] = row
		}
		switch rec.Severity {
		case models.SeverityLow:
			row.Low++
		case models.SeverityMedium:
			row.Medium++
		case models.SeverityHigh:
			row.High++
		}
	}

	type pieSlice struct {
		label string
		value int
	}
	ranked := make([]pieSlice, 0, 3)
	for _, tier := range []string{models.SeverityLow, models.SeverityMedium, models.SeverityHigh} {
		if tierCounts[tier] > 0 {
			ranked = append(ranked, pieSlice{label: tier, value: tierCounts[tier]})
		}
	}
	// Descending count keeps the dominant tier first, like a value_counts view.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].value > ranked[j].value })

	pie := PieChart{Labels: []string{}, Values: []int{}}
	for _, s := range ranked {
		pie.Labels = append(pie.Labels, s.label)
		pie.Values = append(pie.Values, s.value)
	}

	bar := make([]AreaSeverityRow, 0, len(byArea))
	for _, row := range byArea {
		bar = append(bar, *row)
	}
	sort.Slice(bar, func(i, j int) bool { return bar[i].Area < bar[j].Area })

	return BreakdownResult{Pie: pie, Bar: bar}
}
