package extract_test

import (
	"testing"

	"play_comments/internal/extract"
)

func TestAppInfo_FullDetailPage(t *testing.T) {
	markup := `<html><body>
		<h1 class="app-title"> Super App </h1>
		<script>{"developer": "Acme Co", "genre": "Productivity", "ratingValue": "4.6", "ratingCount": "12345", "installs": "10,000,000+", "softwareVersion": "2.3.1"}</script>
	</body></html>`

	info, ok := extract.AppInfo(markup)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if info.Name != "Super App" {
		t.Fatalf("name: %q", info.Name)
	}
	if info.Developer != "Acme Co" {
		t.Fatalf("developer: %q", info.Developer)
	}
	if info.Category != "Productivity" {
		t.Fatalf("category: %q", info.Category)
	}
	if info.Rating != 4.6 {
		t.Fatalf("rating: %v", info.Rating)
	}
	if info.TotalRatings != 12345 {
		t.Fatalf("totalRatings: %d", info.TotalRatings)
	}
	if info.Downloads != "10,000,000+" {
		t.Fatalf("downloads: %q", info.Downloads)
	}
	if info.Version != "2.3.1" {
		t.Fatalf("version: %q", info.Version)
	}
}

func TestAppInfo_NoName(t *testing.T) {
	markup := `<html><body><script>{"developer": "Acme Co"}</script></body></html>`
	info, ok := extract.AppInfo(markup)
	if ok {
		t.Fatal("expected ok=false without an <h1> name")
	}
	// labeled fields are still best-effort recovered
	if info.Developer != "Acme Co" {
		t.Fatalf("developer: %q", info.Developer)
	}
	if info.Name != "Unknown" {
		t.Fatalf("name should default to Unknown, got %q", info.Name)
	}
}

func TestAppInfo_EmptyAndGarbage(t *testing.T) {
	if _, ok := extract.AppInfo(""); ok {
		t.Fatal("empty markup must not succeed")
	}
	info, ok := extract.AppInfo("<<<not html at all")
	if ok {
		t.Fatal("garbage markup must not succeed")
	}
	if info.Rating != 0 || info.TotalRatings != 0 {
		t.Fatalf("numeric defaults expected: %+v", info)
	}
}

func TestAppInfo_OutOfRangeRatingIgnored(t *testing.T) {
	markup := `<html><body><h1>Rated App</h1><script>{"ratingValue": "9.7"}</script></body></html>`
	info, ok := extract.AppInfo(markup)
	if !ok {
		t.Fatal("expected ok")
	}
	if info.Rating != 0 {
		t.Fatalf("rating above 5 should stay 0, got %v", info.Rating)
	}
}
