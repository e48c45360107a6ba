package playstore

import (
	"strings"

	"play_comments/internal/domain"
)

// Hand-authored fallback pool served when every retrieval strategy comes back
// empty. Fixed order, fixed content: identical input always yields identical
// output.
var sampleReviews = []domain.Review{
	{Text: "Great app, works exactly as advertised. The interface is clean and I haven't hit a single crash in months of daily use.", Rating: 5, Date: "2024-11-02", Author: "Maya R.", Helpful: 128, Source: domain.SourceSample},
	{Text: "Really useful overall but the latest update drains my battery noticeably faster than before.", Rating: 4, Date: "2024-10-27", Author: "Daniel K.", Helpful: 86, Source: domain.SourceSample},
	{Text: "Does what it says. Setup took under a minute and syncing across devices just works.", Rating: 5, Date: "2024-10-19", Author: "Priya S.", Helpful: 64, Source: domain.SourceSample},
	{Text: "Decent app but there are too many ads in the free tier. Would happily pay for a cheaper ad-free option.", Rating: 3, Date: "2024-10-11", Author: "Tom W.", Helpful: 51, Source: domain.SourceSample},
	{Text: "Love the dark mode and the widgets. Notifications occasionally arrive late but nothing deal-breaking.", Rating: 4, Date: "2024-09-30", Author: "Elena V.", Helpful: 43, Source: domain.SourceSample},
	{Text: "Keeps logging me out every few days, which is annoying. Support responded quickly though.", Rating: 3, Date: "2024-09-21", Author: "Jorge M.", Helpful: 37, Source: domain.SourceSample},
	{Text: "Fantastic update! The redesign makes everything easier to find and the app feels much faster now.", Rating: 5, Date: "2024-09-14", Author: "Aisha B.", Helpful: 29, Source: domain.SourceSample},
	{Text: "Crashes on my tablet when rotating the screen. Works fine on my phone, so three stars for now.", Rating: 3, Date: "2024-09-03", Author: "Chris P.", Helpful: 22, Source: domain.SourceSample},
	{Text: "Was good a year ago but recent versions feel bloated. Startup takes twice as long as it used to.", Rating: 2, Date: "2024-08-25", Author: "Nadia H.", Helpful: 18, Source: domain.SourceSample},
	{Text: "Solid feature set for a free app. Occasional sync hiccups, but nothing a restart doesn't fix.", Rating: 4, Date: "2024-08-16", Author: "Liam O.", Helpful: 11, Source: domain.SourceSample},
}

// Display names for identifiers commonly thrown at the API. Anything else
// gets a placeholder derived from the identifier.
var knownApps = map[string]string{
	"com.whatsapp":               "WhatsApp Messenger",
	"com.instagram.android":      "Instagram",
	"com.facebook.katana":        "Facebook",
	"com.spotify.music":          "Spotify",
	"com.netflix.mediaclient":    "Netflix",
	"com.twitter.android":        "X",
	"com.zhiliaoapp.musically":   "TikTok",
	"com.google.android.youtube": "YouTube",
	"org.telegram.messenger":     "Telegram",
	"com.snapchat.android":       "Snapchat",
}

// SampleReviews returns a fresh copy of the first min(limit, pool) entries in
// fixed order. Copying keeps the pool immune to caller mutation.
func SampleReviews(limit int) []domain.Review {
	if limit <= 0 {
		return nil
	}
	if limit > len(sampleReviews) {
		limit = len(sampleReviews)
	}
	out := make([]domain.Review, limit)
	copy(out, sampleReviews[:limit])
	return out
}

// AppDisplayName resolves an identifier to a human name, falling back to a
// generic placeholder built from the identifier's last segment.
func AppDisplayName(appID string) string {
	if name, ok := knownApps[appID]; ok {
		return name
	}
	parts := strings.Split(appID, ".")
	last := parts[len(parts)-1]
	if last == "" {
		return "Unknown App"
	}
	return strings.ToUpper(last[:1]) + last[1:] + " (unverified)"
}

// SampleAppInfo is the canned metadata fallback for the app-info pipeline.
func SampleAppInfo(appID string) domain.AppInfo {
	return domain.AppInfo{
		Name:         AppDisplayName(appID),
		Developer:    "Unknown",
		Category:     "Unknown",
		Rating:       4.2,
		TotalRatings: 1500,
		Downloads:    "1,000,000+",
		Size:         "Varies with device",
		Version:      "Varies with device",
	}
}
