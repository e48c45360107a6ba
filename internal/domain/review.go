package domain

// Provenance tags carried in Review.Source. "api" marks records recovered
// from embedded structured data, "html" records scraped out of page markup,
// "sample" synthetic fallback data.
const (
	SourceAPI    = "api"
	SourceHTML   = "html"
	SourceSample = "sample"
)

// Sort orders accepted by the API. They only shape the upstream URL; results
// are returned in whatever order the upstream (or the sample pool) yields.
const (
	SortRecent      = "recent"
	SortRating      = "rating"
	SortHelpfulness = "helpfulness"
)

// Review is one user review. Text is never empty for records handed to a
// caller; Rating 0 means "unknown/unparsed".
type Review struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"` // ISO-8601 calendar date
	Author  string `json:"author"`
	Helpful int    `json:"helpful"`
	Source  string `json:"source"`
}

// FetchOptions is per-request fetch configuration. Limit and Sort are
// validated at the HTTP boundary; the orchestrator does not re-check them.
type FetchOptions struct {
	Limit    int
	Sort     string
	Language string
	Country  string
}

// AppInfo is optional application metadata scraped from the detail page.
// String fields default to "Unknown", numeric fields to zero.
type AppInfo struct {
	Name         string  `json:"name"`
	Developer    string  `json:"developer"`
	Category     string  `json:"category"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"totalRatings"`
	Downloads    string  `json:"downloads"`
	Size         string  `json:"size"`
	Version      string  `json:"version"`
}

// ReviewStats aggregates a fetched review set.
type ReviewStats struct {
	TotalComments       int            `json:"totalComments"`
	AverageRating       float64        `json:"averageRating"`
	RatingDistribution  map[string]int `json:"ratingDistribution"`
	MonthlyDistribution map[string]int `json:"monthlyDistribution"`
}

// ValidSort reports whether s is one of the accepted sort orders.
func ValidSort(s string) bool {
	switch s {
	case SortRecent, SortRating, SortHelpfulness:
		return true
	}
	return false
}
