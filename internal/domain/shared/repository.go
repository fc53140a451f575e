package shared

// Filter defines common pagination and sorting options for list queries
type Filter struct {
	Limit    int    // Maximum number of results, 0 means no limit
	Offset   int    // Number of results to skip
	SortBy   string // Field to sort by
	SortDesc bool   // Sort in descending order
}

// Normalize clamps the filter to sane bounds
func (f *Filter) Normalize(defaultLimit, maxLimit int) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
