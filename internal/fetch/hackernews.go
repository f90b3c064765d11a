package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/config"
)

const hnSearchBase = "https://hn.algolia.com/api/v1"

// StoryFetcher queries the Algolia Hacker News search API for stories
// matching the configured keywords.
type StoryFetcher struct {
	client  *http.Client
	baseURL string
}

func NewStoryFetcher() *StoryFetcher {
	return &StoryFetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: hnSearchBase,
	}
}

type hnSearchResponse struct {
	Hits []hnHit `json:"hits"`
}

type hnHit struct {
	ObjectID    string    `json:"objectID"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Points      int       `json:"points"`
	Author      string    `json:"author"`
	NumComments int       `json:"num_comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fetch runs one search per keyword and merges the results. Stories
// found under several keywords are reported once, tagged with the first
// keyword that matched. An error is returned only when every keyword
// search failed.
func (f *StoryFetcher) Fetch(ctx context.Context, cfg config.HackerNews, cutoff time.Time) ([]Item, error) {
	if len(cfg.Keywords) == 0 {
		return nil, nil
	}

	var (
		items []Item
		errs  []error
		seen  = map[string]bool{}
	)

	for _, keyword := range cfg.Keywords {
		hits, err := f.search(ctx, keyword, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("searching %q: %w", keyword, err))
			continue
		}

		for _, hit := range hits {
			if !hit.CreatedAt.After(cutoff) {
				continue
			}
			// Belt and braces: the API already filters on points, but the
			// threshold is a hard guarantee for digest consumers.
			if hit.Points < cfg.MinScore {
				continue
			}

			discussion := "https://news.ycombinator.com/item?id=" + hit.ObjectID
			if seen[discussion] {
				continue
			}
			seen[discussion] = true

			storyURL := hit.URL
			if storyURL == "" {
				storyURL = discussion
			}

			items = append(items, Item{
				Source:        SourceHN,
				SourceName:    "Hacker News",
				Title:         hit.Title,
				URL:           storyURL,
				Published:     hit.CreatedAt,
				Category:      "discussions",
				Tags:          []string{keyword},
				Author:        hit.Author,
				Points:        hit.Points,
				Comments:      hit.NumComments,
				DiscussionURL: discussion,
			})
		}
	}

	if len(errs) == len(cfg.Keywords) {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func (f *StoryFetcher) search(ctx context.Context, keyword string, cfg config.HackerNews) ([]hnHit, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("tags", "story")
	params.Set("numericFilters", fmt.Sprintf("points>=%d", cfg.MinScore))
	params.Set("hitsPerPage", fmt.Sprintf("%d", cfg.MaxItems))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result hnSearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return nil, err
	}
	return result.Hits, nil
}
