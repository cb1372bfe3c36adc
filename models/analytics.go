package models

// CountEntry is one bar of an analytics chart
type CountEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalyticsSnapshot aggregates issue counts by category and status
type AnalyticsSnapshot struct {
	IssuesByCategory []CountEntry `json:"issuesByCategory"`
	IssuesByStatus   []CountEntry `json:"issuesByStatus"`
	TotalIssues      int          `json:"totalIssues"`
	OpenIssues       int          `json:"openIssues"`
}
