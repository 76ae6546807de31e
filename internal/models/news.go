package models

// NewsSource is a grounding citation attached to a news summary.
type NewsSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// NewsResult is a search-grounded news summary.
type NewsResult struct {
	Summary string       `json:"summary"`
	Sources []NewsSource `json:"sources"`
}
