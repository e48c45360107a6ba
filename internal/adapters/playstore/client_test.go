package playstore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"play_comments/internal/adapters/playstore"
	"play_comments/internal/domain"
)

func opts() domain.FetchOptions {
	return domain.FetchOptions{Limit: 10, Sort: domain.SortRecent, Language: "en", Country: "us"}
}

func TestClient_DetailPage(t *testing.T) {
	var gotReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		_, _ = w.Write([]byte("<html>detail page</html>"))
	}))
	defer ts.Close()

	cl := playstore.New(ts.URL, 2*time.Second, 5, 100) // high RPS for tests
	body, err := cl.DetailPage(context.Background(), "com.example.app", opts())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if body != "<html>detail page</html>" {
		t.Fatalf("unexpected body: %q", body)
	}
	if gotReq.URL.Path != "/store/apps/details" {
		t.Fatalf("path: %s", gotReq.URL.Path)
	}
	q := gotReq.URL.Query()
	if q.Get("id") != "com.example.app" || q.Get("hl") != "en" || q.Get("gl") != "us" {
		t.Fatalf("query: %v", q)
	}
	if q.Get("sortOrder") != "newest" {
		t.Fatalf("sortOrder: %s", q.Get("sortOrder"))
	}
	if q.Get("showAllReviews") != "" {
		t.Fatal("primary URL must not request the expanded view")
	}
	if ua := gotReq.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla/5.0") {
		t.Fatalf("browser-like user agent expected, got %q", ua)
	}
	if al := gotReq.Header.Get("Accept-Language"); !strings.HasPrefix(al, "en-US") {
		t.Fatalf("Accept-Language: %q", al)
	}
}

func TestClient_ReviewsPageAndSortMapping(t *testing.T) {
	var gotURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	cl := playstore.New(ts.URL, 2*time.Second, 5, 100)
	o := opts()
	o.Sort = domain.SortHelpfulness
	if _, err := cl.ReviewsPage(context.Background(), "com.example.app", o); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(gotURL, "showAllReviews=true") {
		t.Fatalf("expected expanded-reviews URL, got %s", gotURL)
	}
	if !strings.Contains(gotURL, "sortOrder=helpfulness") {
		t.Fatalf("expected helpfulness sort, got %s", gotURL)
	}
}

func TestClient_Non2xxIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cl := playstore.New(ts.URL, 2*time.Second, 5, 100)
	if _, err := cl.DetailPage(context.Background(), "com.example.app", opts()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	cl := playstore.New(ts.URL, 5*time.Second, 5, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := cl.DetailPage(ctx, "com.example.app", opts()); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
