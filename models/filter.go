package models

// FilterPayload narrows the active dataset for one query. All three
// membership tests apply conjunctively. An empty list matches nothing:
// the shipped dashboard always sends fully populated lists, so treating
// empty as "allow all" would silently change results.
type FilterPayload struct {
	Areas      []string `json:"areas"`
	Crimes     []string `json:"crimes"`
	Severities []string `json:"severities"`
}

// HotspotPayload extends the filter with the requested cluster count.
type HotspotPayload struct {
	FilterPayload
	NClusters int `json:"n_clusters" binding:"required,min=1"`
}

// SafetyRequest is the conversational assistant input.
type SafetyRequest struct {
	Message      string   `json:"message"`
	CrimeContext []string `json:"crime_context"`
}
