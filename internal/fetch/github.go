package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/config"
)

const (
	githubAPIBase = "https://api.github.com"

	// Most recent releases considered per repository.
	maxReleasesPerRepo = 5

	// Release note preview length in runes.
	bodyPreviewLen = 600

	maxResponseBytes = 4 << 20
)

// ReleaseFetcher pulls recent releases for one GitHub repository.
type ReleaseFetcher struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewReleaseFetcher() *ReleaseFetcher {
	return &ReleaseFetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: githubAPIBase,
		token:   os.Getenv("GITHUB_TOKEN"),
	}
}

type ghRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Prerelease  bool      `json:"prerelease"`
	Body        string    `json:"body"`
	Author      struct {
		Login string `json:"login"`
	} `json:"author"`
	Assets []struct {
		Name string `json:"name"`
	} `json:"assets"`
}

func (f *ReleaseFetcher) Fetch(ctx context.Context, source config.RepoSource, cutoff time.Time) ([]Item, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", f.baseURL, source.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", source.Repo, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if f.token != "" {
		req.Header.Set("Authorization", "token "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching releases for %s: %w", source.Repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching releases for %s: unexpected status %d", source.Repo, resp.StatusCode)
	}

	var releases []ghRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&releases); err != nil {
		return nil, fmt.Errorf("decoding releases for %s: %w", source.Repo, err)
	}

	if len(releases) > maxReleasesPerRepo {
		releases = releases[:maxReleasesPerRepo]
	}

	items := make([]Item, 0, len(releases))
	for _, rel := range releases {
		if !rel.PublishedAt.After(cutoff) {
			continue
		}

		title := rel.Name
		if title == "" {
			title = rel.TagName
		}

		hl := ExtractHighlights(rel.Body)

		items = append(items, Item{
			Source:     SourceRelease,
			SourceName: source.Name,
			Title:      title,
			URL:        rel.HTMLURL,
			Published:  rel.PublishedAt,
			Summary:    truncate(rel.Body, bodyPreviewLen),
			Category:   source.Category,
			Tags:       releaseTags(rel.Prerelease, hl),
			Author:     rel.Author.Login,
			Repo:       source.Repo,
			Version:    rel.TagName,
			Prerelease: rel.Prerelease,
			Assets:     len(rel.Assets),
			Highlights: hl,
		})
	}
	return items, nil
}

func releaseTags(prerelease bool, hl Highlights) []string {
	var out []string
	if len(hl.Breaking) > 0 {
		out = append(out, "breaking-changes")
	}
	if len(hl.Security) > 0 {
		out = append(out, "security")
	}
	if prerelease {
		out = append(out, "pre-release")
	}
	return out
}
