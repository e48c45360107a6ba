package extract

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"play_comments/internal/adapters/observability"
	"play_comments/internal/domain"
)

// Strategy is one independent way of pulling reviews out of raw markup.
// Implementations are pure and best-effort: on any internal failure they
// return nil instead of an error.
type Strategy interface {
	Name() string
	TryExtract(markup string, limit int) []domain.Review
}

// Engine runs an ordered list of strategies against the markup and
// accumulates their results until limit is reached. It does not stop at the
// first non-empty result and does not de-duplicate across strategies.
type Engine struct {
	strategies []Strategy
}

func NewEngine() *Engine {
	return &Engine{strategies: []Strategy{
		containerStrategy{name: "container", selector: `[class*="review"], [class*="Review"]`},
		jsonBlobStrategy{},
		containerStrategy{name: "tagged", selector: `[data-review-id]`},
		textFieldStrategy{},
	}}
}

// Extract returns at most limit reviews. Records with empty text are dropped
// here so callers never see them.
func (e *Engine) Extract(markup string, limit int) []domain.Review {
	if markup == "" || limit <= 0 {
		return nil
	}
	out := make([]domain.Review, 0, limit)
	for _, s := range e.strategies {
		if len(out) >= limit {
			break
		}
		kept := 0
		for _, r := range s.TryExtract(markup, limit-len(out)) {
			if strings.TrimSpace(r.Text) == "" {
				continue
			}
			out = append(out, r)
			kept++
			if len(out) >= limit {
				break
			}
		}
		observability.ObserveExtraction(s.Name(), kept)
	}
	return out
}

// ---- structural / attribute-tagged container strategy ----

// Blocks shorter than this are discarded as noise.
const minBlockLength = 10

var navKeywords = []string{
	"sign in", "privacy policy", "terms of service", "cookies",
	"gift card", "redeem", "top charts", "new releases", "parent guide",
}

// looksLikeNavigation flags text that co-occurs with site chrome vocabulary.
func looksLikeNavigation(text string) bool {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range navKeywords {
		if strings.Contains(lower, kw) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

var (
	blockRatingPattern = regexp.MustCompile(`["'\[](?:rating|stars?)["'\]]\s*[:=]\s*["']?([0-9]+(?:\.[0-9]+)?)`)
	blockAuthorPattern = regexp.MustCompile(`["'\[](?:author|name|userName)["'\]]\s*[:=]\s*["']([^"']{1,80})["']`)
)

type containerStrategy struct {
	name     string
	selector string
}

func (s containerStrategy) Name() string { return s.name }

func (s containerStrategy) TryExtract(markup string, limit int) []domain.Review {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	var out []domain.Review
	doc.Find(s.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseWhitespace(sel.Text())
		if len(text) < minBlockLength || looksLikeNavigation(text) {
			return true
		}
		r := domain.Review{
			Text:   text,
			Date:   currentDate(),
			Author: "Unknown",
			Source: domain.SourceHTML,
		}
		if inner, err := sel.Html(); err == nil {
			// goquery re-serializes with entity-escaped quotes; undo that
			// before scanning for quoted key-value substrings
			inner = html.UnescapeString(inner)
			if m := blockRatingPattern.FindStringSubmatch(inner); m != nil {
				r.Rating = clampRating(parseFloat(m[1]))
			}
			if m := blockAuthorPattern.FindStringSubmatch(inner); m != nil {
				r.Author = strings.TrimSpace(m[1])
			}
		}
		out = append(out, r)
		return len(out) < limit
	})
	return out
}

// ---- embedded structured-data strategy ----

// Alternate field names seen in embedded review payloads, tried in order.
var (
	textAliases    = []string{"text", "reviewText"}
	ratingAliases  = []string{"rating", "starRating"}
	dateAliases    = []string{"date", "reviewDate"}
	authorAliases  = []string{"author", "userName"}
	helpfulAliases = []string{"helpful", "helpfulCount"}
)

var reviewsArrayPattern = regexp.MustCompile(`(?s)"reviews"\s*:\s*(\[.*?\])`)

type jsonBlobStrategy struct{}

func (jsonBlobStrategy) Name() string { return "embedded-json" }

func (jsonBlobStrategy) TryExtract(markup string, limit int) []domain.Review {
	var out []domain.Review
	for _, m := range reviewsArrayPattern.FindAllStringSubmatch(markup, -1) {
		arr := gjson.Parse(m[1])
		if !arr.IsArray() {
			continue // malformed blob, skip this match
		}
		arr.ForEach(func(_, item gjson.Result) bool {
			text := strings.TrimSpace(firstString(item, textAliases))
			if text == "" {
				return true // neither text field populated
			}
			out = append(out, domain.Review{
				Text:    text,
				Rating:  clampRating(firstNumber(item, ratingAliases)),
				Date:    stringOr(strings.TrimSpace(firstString(item, dateAliases)), currentDate()),
				Author:  stringOr(strings.TrimSpace(firstString(item, authorAliases)), "Unknown"),
				Helpful: nonNegative(int(firstNumber(item, helpfulAliases))),
				Source:  domain.SourceAPI,
			})
			return len(out) < limit
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// ---- bare text-field strategy ----

var reviewTextPattern = regexp.MustCompile(`"reviewText"\s*:\s*"((?:[^"\\]|\\.)+)"`)

type textFieldStrategy struct{}

func (textFieldStrategy) Name() string { return "text-field" }

func (textFieldStrategy) TryExtract(markup string, limit int) []domain.Review {
	var out []domain.Review
	for _, m := range reviewTextPattern.FindAllStringSubmatch(markup, -1) {
		// m[0] is the whole-match scan artifact; only the capture group holds the value
		text := strings.TrimSpace(unquote(m[1]))
		if text == "" {
			continue
		}
		out = append(out, domain.Review{
			Text:   text,
			Date:   currentDate(),
			Author: "Unknown",
			Source: domain.SourceHTML,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// ---- helpers ----

func firstString(item gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

func firstNumber(item gjson.Result, paths []string) float64 {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

// clampRating maps anything outside [1,5] to 0 ("unknown") rather than rejecting.
func clampRating(f float64) int {
	n := int(f)
	if n < 1 || n > 5 {
		return 0
	}
	return n
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func unquote(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func currentDate() string {
	return time.Now().Format("2006-01-02")
}
