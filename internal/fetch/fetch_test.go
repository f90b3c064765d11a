package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/config"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAllPartialFailure(t *testing.T) {
	now := time.Now().UTC()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>F</title><link>https://example.com</link><description>t</description>
<item><title>Post</title><link>https://example.com/p</link>
<description>d</description>
<pubDate>` + now.Add(-time.Hour).Format(time.RFC1123Z) + `</pubDate></item>
</channel></rss>`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Feeds: []config.FeedSource{
			{Name: "Good", URL: srv.URL, Category: "news"},
			{Name: "Bad", URL: "http://127.0.0.1:1/feed", Category: "news"},
		},
	}

	res := All(context.Background(), cfg, now.Add(-24*time.Hour), quietLogger())

	if res.AllFailed() {
		t.Error("one source succeeded; run should not count as failed")
	}
	if res.Succeeded != 1 {
		t.Errorf("expected 1 successful source, got %d", res.Succeeded)
	}
	if len(res.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(res.Errors))
	}
	if len(res.Items) != 1 || res.Items[0].Title != "Post" {
		t.Errorf("unexpected items: %+v", res.Items)
	}
}

func TestAllEverySourceFailing(t *testing.T) {
	cfg := &config.Config{
		Feeds: []config.FeedSource{
			{Name: "Bad", URL: "http://127.0.0.1:1/feed", Category: "news"},
		},
		HackerNews: config.HackerNews{Keywords: []string{"devops"}, MinScore: 50, MaxItems: 5},
	}

	// A cancelled context makes every network fetch fail immediately.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := All(ctx, cfg, time.Now().Add(-24*time.Hour), quietLogger())
	if !res.AllFailed() {
		t.Errorf("expected total failure, got %d successes", res.Succeeded)
	}
	if len(res.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(res.Errors))
	}
}
