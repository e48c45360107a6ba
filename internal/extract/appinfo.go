package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"play_comments/internal/domain"
)

var (
	developerPattern   = regexp.MustCompile(`"(?:developer|author|publisher)"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	categoryPattern    = regexp.MustCompile(`"(?:category|genre|applicationCategory)"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	ratingValuePattern = regexp.MustCompile(`"(?:ratingValue|score|averageRating)"\s*:\s*"?([0-9]+(?:\.[0-9]+)?)`)
	ratingCountPattern = regexp.MustCompile(`"(?:ratingCount|reviewCount|totalRatings)"\s*:\s*"?([0-9]+)`)
	downloadsPattern   = regexp.MustCompile(`"(?:downloads|installs|numDownloads)"\s*:\s*"([^"]+)"`)
	sizePattern        = regexp.MustCompile(`"(?:size|fileSize)"\s*:\s*"([^"]+)"`)
	versionPattern     = regexp.MustCompile(`"(?:version|softwareVersion)"\s*:\s*"([^"]+)"`)
)

// AppInfo pulls application metadata out of a detail page. The first <h1> is
// taken as the app name; the remaining fields come from labeled key-value
// substrings anywhere in the markup. ok is false when not even a name could
// be recovered, signalling the caller to fall back to canned metadata.
func AppInfo(markup string) (domain.AppInfo, bool) {
	info := domain.AppInfo{
		Name:      "Unknown",
		Developer: "Unknown",
		Category:  "Unknown",
		Downloads: "Unknown",
		Size:      "Unknown",
		Version:   "Unknown",
	}
	if markup == "" {
		return info, false
	}

	ok := false
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup)); err == nil {
		if name := collapseWhitespace(doc.Find("h1").First().Text()); name != "" {
			info.Name = name
			ok = true
		}
	}

	if m := developerPattern.FindStringSubmatch(markup); m != nil {
		info.Developer = unquote(m[1])
	}
	if m := categoryPattern.FindStringSubmatch(markup); m != nil {
		info.Category = unquote(m[1])
	}
	if m := ratingValuePattern.FindStringSubmatch(markup); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil && f >= 0 && f <= 5 {
			info.Rating = f
		}
	}
	if m := ratingCountPattern.FindStringSubmatch(markup); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			info.TotalRatings = n
		}
	}
	if m := downloadsPattern.FindStringSubmatch(markup); m != nil {
		info.Downloads = m[1]
	}
	if m := sizePattern.FindStringSubmatch(markup); m != nil {
		info.Size = m[1]
	}
	if m := versionPattern.FindStringSubmatch(markup); m != nil {
		info.Version = m[1]
	}
	return info, ok
}
