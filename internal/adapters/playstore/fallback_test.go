package playstore_test

import (
	"reflect"
	"strings"
	"testing"

	"play_comments/internal/adapters/playstore"
	"play_comments/internal/domain"
)

func TestSampleReviews_Deterministic(t *testing.T) {
	a := playstore.SampleReviews(10)
	b := playstore.SampleReviews(10)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("sample pool must be deterministic")
	}

	// callers get copies, not the backing pool
	a[0].Text = "mutated"
	if c := playstore.SampleReviews(1); c[0].Text == "mutated" {
		t.Fatal("caller mutation leaked into the pool")
	}
}

func TestSampleReviews_LimitAndShape(t *testing.T) {
	if got := playstore.SampleReviews(3); len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got := playstore.SampleReviews(500); len(got) != 10 {
		t.Fatalf("expected pool size 10, got %d", len(got))
	}
	if got := playstore.SampleReviews(0); got != nil {
		t.Fatalf("limit 0 should yield nil, got %+v", got)
	}

	for i, r := range playstore.SampleReviews(10) {
		if strings.TrimSpace(r.Text) == "" {
			t.Fatalf("entry %d has empty text", i)
		}
		if r.Rating < 2 || r.Rating > 5 {
			t.Fatalf("entry %d rating %d outside the authored 2-5 span", i, r.Rating)
		}
		if r.Source != domain.SourceSample {
			t.Fatalf("entry %d source %q", i, r.Source)
		}
		if r.Helpful < 0 {
			t.Fatalf("entry %d negative helpful count", i)
		}
		if r.Author == "" || r.Date == "" {
			t.Fatalf("entry %d missing author/date: %+v", i, r)
		}
	}
}

func TestAppDisplayName(t *testing.T) {
	if got := playstore.AppDisplayName("com.whatsapp"); got != "WhatsApp Messenger" {
		t.Fatalf("known app lookup failed: %q", got)
	}
	got := playstore.AppDisplayName("io.example.coolgame")
	if !strings.Contains(got, "Coolgame") || !strings.Contains(got, "unverified") {
		t.Fatalf("placeholder name expected, got %q", got)
	}
}

func TestSampleAppInfo(t *testing.T) {
	info := playstore.SampleAppInfo("com.spotify.music")
	if info.Name != "Spotify" {
		t.Fatalf("name: %q", info.Name)
	}
	if info.Rating < 0 || info.Rating > 5 {
		t.Fatalf("rating out of range: %v", info.Rating)
	}
	if info.Developer == "" || info.Downloads == "" {
		t.Fatalf("defaults missing: %+v", info)
	}
}
