package models

// CategoryAll is the sentinel category label meaning "no category filter".
const CategoryAll = "All Commands"

// Filter values accepted by the listing endpoint.
const (
	FilterTrending = "trending"
	FilterRecent   = "recent"
)

// ListParams holds the filtering and pagination inputs of a catalog listing.
type ListParams struct {
	Page     int    // 1-based page number
	Limit    int    // page size
	Search   string // substring matched against name, description and author
	Category string // exact category label, empty or CategoryAll for no filter
	Filter   string // FilterTrending, FilterRecent or empty
}
