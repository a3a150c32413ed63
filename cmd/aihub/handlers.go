package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/elonfeng/aihub/internal/config"
	"github.com/elonfeng/aihub/internal/refresh"
	"github.com/elonfeng/aihub/internal/store"
	"github.com/elonfeng/aihub/pkg/aggregate"
	"github.com/elonfeng/aihub/pkg/provider"
	"github.com/elonfeng/aihub/pkg/server"
	"github.com/elonfeng/aihub/pkg/source"
)

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}).
		With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Database.Path == "" {
		return store.NewMem(), nil
	}
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}

// buildSources assembles the adapter sequence. The order here is the
// aggregator's fixed concatenation order.
func buildSources(cfg *config.Config, log zerolog.Logger) []source.Source {
	filter := source.NewFilter(cfg.Filter.ExtraKeywords)

	var sources []source.Source
	if cfg.Sources.HackerNews.Enabled {
		sources = append(sources, source.NewHackerNews(
			cfg.Sources.HackerNews.ScanLimit, cfg.Sources.HackerNews.MaxItems, filter, log))
	}
	if cfg.Sources.Reddit.Enabled {
		sources = append(sources, source.NewReddit(
			cfg.Sources.Reddit.Subreddits, cfg.Sources.Reddit.PerSubLimit,
			cfg.Sources.Reddit.MaxItems, log))
	}
	if cfg.Sources.ArXiv.Enabled {
		sources = append(sources, source.NewArXiv(
			cfg.Sources.ArXiv.Categories, cfg.Sources.ArXiv.MaxResults,
			cfg.Sources.ArXiv.MaxItems, log))
	}
	if cfg.Sources.Tools.Enabled {
		sources = append(sources, source.NewStaticTools())
	}
	if cfg.Sources.RSS.Enabled {
		feeds := make([]source.Feed, len(cfg.Sources.RSS.Feeds))
		for i, f := range cfg.Sources.RSS.Feeds {
			feeds[i] = source.Feed{Name: f.Name, URL: f.URL}
		}
		sources = append(sources, source.NewRSS(feeds, cfg.Sources.RSS.MaxItems, filter, log))
	}

	return sources
}

func buildOrchestrator(cfg *config.Config, db store.Store, log zerolog.Logger) *refresh.Orchestrator {
	agg := aggregate.New(log, buildSources(cfg, log)...)
	live := provider.NewLive(agg, nil)
	canned := provider.NewCanned(nil)
	return refresh.New(db, live, canned, cfg.Refresh.ParseTimeout(), log)
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	log := newLogger()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	orch := buildOrchestrator(cfg, db, log)
	srv := server.New(db, orch, port, log)
	return srv.ListenAndServe()
}

func runRefresh(replace bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	orch := buildOrchestrator(cfg, db, log)
	ctx := context.Background()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if replace {
		summary, err := orch.RefreshReplace(ctx)
		if err != nil {
			return fmt.Errorf("replace refresh: %w", err)
		}
		return enc.Encode(summary)
	}

	summary, err := orch.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return enc.Encode(summary)
}

func runStatus(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	orch := buildOrchestrator(cfg, db, log)
	status, err := orch.Status(context.Background())
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOTAL\tNEWS\tRESEARCH\tTOOLS\tTUTORIALS\tLATEST")
	latest := "-"
	if status.LatestUpdate != nil {
		latest = status.LatestUpdate.Format(time.RFC3339)
	}
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n",
		status.TotalItems, status.Categories.News, status.Categories.Research,
		status.Categories.Tools, status.Categories.Tutorials, latest)
	return w.Flush()
}
