package app

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"play_comments/internal/adapters/observability"
	"play_comments/internal/adapters/playstore"
	"play_comments/internal/domain"
	"play_comments/internal/extract"
)

// Service is the fetch orchestrator: primary retrieval, then the secondary
// variant, then deterministic sample data. FetchComments never fails; the
// availability-over-accuracy tradeoff is deliberate and provenance tags are
// the only signal of synthetic data.
type Service struct {
	pages          domain.PageFetcher
	engine         *extract.Engine
	sampleFallback bool
}

func NewService(pages domain.PageFetcher, engine *extract.Engine, sampleFallback bool) *Service {
	return &Service{pages: pages, engine: engine, sampleFallback: sampleFallback}
}

// FetchComments returns at most opts.Limit reviews and at least one whenever
// the sample fallback is enabled and opts.Limit >= 1. Retrieval and
// extraction failures are absorbed here; a panic anywhere below degrades to
// sample output instead of propagating.
func (s *Service) FetchComments(ctx context.Context, appID string, opts domain.FetchOptions) (out []domain.Review) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("app_id", appID).Msg("fetch panicked, serving sample data")
			out = s.sample(opts.Limit)
		}
	}()

	attempts := []struct {
		name  string
		fetch func(context.Context, string, domain.FetchOptions) (string, error)
	}{
		{"primary", s.pages.DetailPage},
		{"secondary", s.pages.ReviewsPage},
	}
	for _, a := range attempts {
		markup, err := a.fetch(ctx, appID, opts)
		if err != nil {
			log.Debug().Err(err).Str("app_id", appID).Str("strategy", a.name).Msg("retrieval attempt failed")
			continue
		}
		if rs := s.engine.Extract(markup, opts.Limit); len(rs) > 0 {
			return rs
		}
	}
	return s.sample(opts.Limit)
}

func (s *Service) sample(limit int) []domain.Review {
	if !s.sampleFallback {
		return []domain.Review{}
	}
	observability.ObserveFallback("reviews")
	return playstore.SampleReviews(limit)
}

// FetchAppInfo mirrors FetchComments with a single retrieval attempt and its
// own extraction rules, falling back to canned metadata.
func (s *Service) FetchAppInfo(ctx context.Context, appID string, opts domain.FetchOptions) domain.AppInfo {
	markup, err := s.pages.DetailPage(ctx, appID, opts)
	if err == nil {
		if info, ok := extract.AppInfo(markup); ok {
			return info
		}
	} else {
		log.Debug().Err(err).Str("app_id", appID).Msg("app info retrieval failed")
	}
	observability.ObserveFallback("appinfo")
	return playstore.SampleAppInfo(appID)
}

// ComputeStats aggregates a review set: rating histogram (0 included), month
// buckets keyed YYYY-MM, and the average rating rounded to two decimals
// (zero, not NaN, for an empty set).
func ComputeStats(reviews []domain.Review) domain.ReviewStats {
	stats := domain.ReviewStats{
		TotalComments:       len(reviews),
		RatingDistribution:  map[string]int{"0": 0, "1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
		MonthlyDistribution: map[string]int{},
	}
	sum := 0
	for _, r := range reviews {
		stats.RatingDistribution[strconv.Itoa(r.Rating)]++
		sum += r.Rating
		if month, ok := monthBucket(r.Date); ok {
			stats.MonthlyDistribution[month]++
		}
	}
	if len(reviews) > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(len(reviews))*100) / 100
	}
	return stats
}

func monthBucket(date string) (string, bool) {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("2006-01"), true
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format("2006-01"), true
	}
	if len(date) >= 7 {
		if t, err := time.Parse("2006-01", date[:7]); err == nil {
			return t.Format("2006-01"), true
		}
	}
	return "", false
}
