package analysis

import "crime-analytics-api/models"

// ApplyFilter returns the records satisfying all three membership tests.
// Order-preserving. An empty allowed-set matches nothing, mirroring a set
// membership test against an empty set.
func ApplyFilter(records []models.Incident, f models.FilterPayload) []models.Incident {
	areas := toSet(f.Areas)
	crimes := toSet(f.Crimes)
	severities := toSet(f.Severities)

	filtered := make([]models.Incident, 0)
	for _, rec := range records {
		if _, ok := areas[rec.Area]; !ok {
			continue
		}
		if _, ok := crimes[rec.Description]; !ok {
			continue
		}
		if _, ok := severities[rec.Severity]; !ok {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
