package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/config"
	"github.com/Sid-Romero/sentinel-ops/internal/digest"
	"github.com/Sid-Romero/sentinel-ops/internal/fetch"
	"github.com/Sid-Romero/sentinel-ops/internal/history"
	"github.com/Sid-Romero/sentinel-ops/internal/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const fetchTimeout = 2 * time.Minute

func runDigest(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	window := selectWindow()
	now := time.Now()

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
	defer cancel()

	log.WithFields(logrus.Fields{
		"window": window,
		"cutoff": window.Cutoff(now).UTC().Format(time.RFC3339),
	}).Info("starting digest run")

	result := fetch.All(ctx, cfg, window.Cutoff(now), log)
	if result.AllFailed() {
		return fmt.Errorf("no source could be fetched: %w", errors.Join(result.Errors...))
	}

	opts := digest.Options{MaxStories: cfg.MaxStories()}

	var store *history.Store
	if cfg.History.Dedupe {
		store, err = history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		opts.Seen = func(url string) bool {
			seen, err := store.Seen(url)
			if err != nil {
				log.WithError(err).Warn("history lookup failed")
				return false
			}
			return seen
		}
	}

	d := digest.Assemble(result.Items, window, now, opts)
	md := render.Markdown(d)

	if flagDryRun {
		_, err := cmd.OutOrStdout().Write(md)
		return err
	}

	outDir := cfg.GetOutputDir()
	if flagOutput != "" {
		outDir = flagOutput
	}
	path := outputPath(outDir, window, now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, md, 0o644); err != nil {
		return fmt.Errorf("writing digest: %w", err)
	}

	if store != nil {
		if err := store.MarkReported(sectionItems(d), path, now); err != nil {
			log.WithError(err).Warn("recording digest history failed")
		}
		if _, err := store.Prune(cfg.HistoryRetention()); err != nil {
			log.WithError(err).Warn("pruning history failed")
		}
	}

	log.WithFields(logrus.Fields{
		"path":    path,
		"items":   d.TotalItems(),
		"skipped": len(result.Errors),
	}).Info("digest written")
	fmt.Fprintf(cmd.OutOrStdout(), "Digest written to %s\n", path)
	return nil
}

func selectWindow() digest.Window {
	switch {
	case flagTriDaily:
		return digest.TriDaily
	case flagWeekly:
		return digest.Weekly
	default:
		return digest.Daily
	}
}

// outputPath encodes the window and timestamp. Tri-daily runs happen
// several times a day, so their filenames carry the clock time too.
func outputPath(root string, w digest.Window, now time.Time) string {
	stamp := now.Format("2006-01-02")
	if w == digest.TriDaily {
		stamp = now.Format("2006-01-02-1504")
	}
	return filepath.Join(root, string(w), "digest-"+stamp+".md")
}

func sectionItems(d *digest.Digest) []fetch.Item {
	var items []fetch.Item
	for _, s := range d.Sections {
		items = append(items, s.Items...)
	}
	return items
}
