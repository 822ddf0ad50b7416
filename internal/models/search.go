package models

// MaterialHit is the trimmed material projection returned by search.
type MaterialHit struct {
	ID      string `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Subject string `db:"subject" json:"subject"`
}

// GroupHit is the trimmed group projection returned by search.
type GroupHit struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// SearchResult merges both sub-query outcomes into one envelope. Slices are
// always non-nil so an empty result serialises as [] rather than null.
type SearchResult struct {
	Materials []MaterialHit `json:"materials"`
	Groups    []GroupHit    `json:"groups"`
}
