package catalog

import (
	"hash/fnv"
	"time"
)

// DateLayout matches the display format the front end uses for
// publication dates.
const DateLayout = "Jan 2, 2006"

const (
	upvoteSeedMin  = 500
	upvoteSeedSpan = 5000
)

// Build generates the article catalog from the seed list. Articles come
// out in seed order, with publication dates computed relative to now.
// The result is fully deterministic for a given seed list and instant.
func Build(seeds []Seed, now time.Time) []Article {
	articles := make([]Article, 0, len(seeds))

	for _, seed := range seeds {
		publishedAt := now.AddDate(0, 0, -seed.DaysAgo)

		articles = append(articles, Article{
			ID:              seed.ID,
			Title:           seed.Title,
			Publisher:       seed.Publisher,
			Authors:         seed.Authors,
			Abstract:        seed.Description,
			AbstractPreview: seed.Description,
			PublicationDate: publishedAt.Format(DateLayout),
			Category:        seed.Category,
			DOI:             seed.Link,
			WhyMatters:      seed.WhyMatters,
			Upvotes:         upvoteSeed(seed.ID),
			Timestamp:       publishedAt.UnixMilli(),
			AIInsights:      seed.Insights,
			ReadTime:        seed.ReadTime,
			PublisherLogo:   PublisherLogo(seed.Publisher),
		})
	}

	return articles
}

// upvoteSeed maps a seed id into [500, 5500). Hash-based rather than
// random so repeated builds agree and tests can pin exact values.
func upvoteSeed(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return upvoteSeedMin + int(h.Sum32()%upvoteSeedSpan)
}
