package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/config"
	"github.com/Sid-Romero/sentinel-ops/internal/tags"
	"github.com/mmcdole/gofeed"
)

// Most recent entries considered per feed, regardless of window.
const maxEntriesPerFeed = 10

// RSSFetcher turns one RSS/Atom feed into normalized items.
type RSSFetcher struct {
	parser *gofeed.Parser
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{parser: gofeed.NewParser()}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.FeedSource, cutoff time.Time) ([]Item, error) {
	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	entries := feed.Items
	if len(entries) > maxEntriesPerFeed {
		entries = entries[:maxEntriesPerFeed]
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		var pub time.Time
		if entry.PublishedParsed != nil {
			pub = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			pub = *entry.UpdatedParsed
		}

		// Entries without a usable date are kept; dated entries must be
		// inside the window.
		if !pub.IsZero() && !pub.After(cutoff) {
			continue
		}

		desc := entry.Description
		if desc == "" {
			desc = entry.Content
		}
		desc = truncate(stripHTML(desc), 200)

		var author string
		if entry.Author != nil {
			author = entry.Author.Name
		}

		items = append(items, Item{
			Source:     SourceRSS,
			SourceName: source.Name,
			Title:      entry.Title,
			URL:        entry.Link,
			Published:  pub,
			Summary:    desc,
			Category:   source.Category,
			Tags:       tags.For(entry.Title, desc),
			Author:     author,
		})
	}
	return items, nil
}
