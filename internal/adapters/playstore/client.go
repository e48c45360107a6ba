package playstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"play_comments/internal/adapters/observability"
	"play_comments/internal/domain"
)

// Client fetches storefront detail pages. It is best-effort by contract:
// callers treat any returned error as "this strategy yielded nothing".
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter

	userAgents []string
}

// Bodies larger than this are truncated; detail pages are well under it.
const maxBodySize = 10 * 1024 * 1024

func New(base string, timeout time.Duration, maxRedirects, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	if maxRedirects <= 0 {
		maxRedirects = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
		userAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		},
	}
}

// DetailPage is the primary retrieval strategy: the plain detail page
// parameterized by sort and locale.
func (c *Client) DetailPage(ctx context.Context, appID string, opts domain.FetchOptions) (string, error) {
	return c.get(ctx, c.pageURL(appID, opts, false), opts)
}

// ReviewsPage is the secondary strategy: the expanded-reviews variant of the
// same page. Used only when the primary yields zero records.
func (c *Client) ReviewsPage(ctx context.Context, appID string, opts domain.FetchOptions) (string, error) {
	return c.get(ctx, c.pageURL(appID, opts, true), opts)
}

func (c *Client) pageURL(appID string, opts domain.FetchOptions, allReviews bool) string {
	params := url.Values{}
	params.Set("id", appID)
	params.Set("hl", opts.Language)
	params.Set("gl", opts.Country)
	params.Set("sortOrder", sortOrder(opts.Sort))
	if allReviews {
		params.Set("showAllReviews", "true")
	}
	return fmt.Sprintf("%s/store/apps/details?%s", c.base, params.Encode())
}

// sortOrder maps API sort names onto the upstream query value. The upstream
// is trusted to honor it (or not); no client-side re-sorting happens.
func sortOrder(sort string) string {
	switch sort {
	case domain.SortRating:
		return "rating"
	case domain.SortHelpfulness:
		return "helpfulness"
	default:
		return "newest"
	}
}

func (c *Client) get(ctx context.Context, endpoint string, opts domain.FetchOptions) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgents[int(time.Now().UnixNano())%len(c.userAgents)])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", acceptLanguage(opts.Language, opts.Country))

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("details", 0, time.Since(start))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("details", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func acceptLanguage(lang, country string) string {
	if lang == "" {
		lang = "en"
	}
	if country == "" {
		return fmt.Sprintf("%s;q=0.9", lang)
	}
	return fmt.Sprintf("%s-%s,%s;q=0.9", lang, strings.ToUpper(country), lang)
}
