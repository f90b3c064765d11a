package fetch

import (
	"context"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/config"
	"github.com/sirupsen/logrus"
)

// Result aggregates the outcome of one fetch pass over every source.
type Result struct {
	Items     []Item
	Errors    []error
	Succeeded int
}

// AllFailed reports whether no source produced a successful fetch. A
// successful fetch with zero items does not count as a failure.
func (r Result) AllFailed() bool {
	return r.Succeeded == 0
}

// All fetches every configured source sequentially and returns whatever
// could be collected. A failing source is logged and skipped; the
// Hacker News keyword set counts as a single source.
func All(ctx context.Context, cfg *config.Config, cutoff time.Time, log *logrus.Logger) Result {
	var res Result

	rss := NewRSSFetcher()
	for _, feed := range cfg.Feeds {
		log.WithField("feed", feed.Name).Info("fetching rss feed")
		items, err := rss.Fetch(ctx, feed, cutoff)
		res.record(items, err, log, logrus.Fields{"feed": feed.Name, "url": feed.URL})
	}

	releases := NewReleaseFetcher()
	for _, repo := range cfg.Repos {
		log.WithField("repo", repo.Repo).Info("fetching github releases")
		items, err := releases.Fetch(ctx, repo, cutoff)
		res.record(items, err, log, logrus.Fields{"repo": repo.Repo})
	}

	if len(cfg.HackerNews.Keywords) > 0 {
		log.WithField("keywords", len(cfg.HackerNews.Keywords)).Info("searching hacker news")
		items, err := NewStoryFetcher().Fetch(ctx, cfg.HackerNews, cutoff)
		res.record(items, err, log, logrus.Fields{"source": "hacker news"})
	}

	return res
}

func (r *Result) record(items []Item, err error, log *logrus.Logger, fields logrus.Fields) {
	if err != nil {
		r.Errors = append(r.Errors, err)
		log.WithFields(fields).WithError(err).Warn("source skipped")
		return
	}
	r.Succeeded++
	r.Items = append(r.Items, items...)
}
