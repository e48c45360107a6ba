package domain

import "context"

// PageFetcher retrieves raw upstream markup. DetailPage is the primary
// strategy; ReviewsPage requests the expanded-reviews variant and is tried
// only when the primary yields nothing.
type PageFetcher interface {
	DetailPage(ctx context.Context, appID string, opts FetchOptions) (string, error)
	ReviewsPage(ctx context.Context, appID string, opts FetchOptions) (string, error)
}

// CommentService is the sole entry point used by request handlers.
// FetchComments never fails: when every retrieval strategy comes back empty
// it serves deterministic sample data, so callers always receive records
// (provenance is carried in Review.Source).
type CommentService interface {
	FetchComments(ctx context.Context, appID string, opts FetchOptions) []Review
	FetchAppInfo(ctx context.Context, appID string, opts FetchOptions) AppInfo
}
