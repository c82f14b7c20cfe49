// Package app wires config, lexicon sources, the n-gram model and the checker
// together, and rebuilds the checker when lexicon files change.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bastiangx/teny/internal/store"
	"github.com/bastiangx/teny/internal/watch"
	"github.com/bastiangx/teny/pkg/checker"
	"github.com/bastiangx/teny/pkg/config"
	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/bastiangx/teny/pkg/ngram"
	"github.com/bastiangx/teny/pkg/server"
	"github.com/charmbracelet/log"
)

// redisTimeout bounds the optional user-word fetch at startup.
const redisTimeout = 2 * time.Second

// App holds the long-lived pieces of a teny process.
type App struct {
	Config  *config.Config
	Handler *server.Handler
	Model   *ngram.Model

	watcher *watch.Watcher
}

// CheckerOptions maps the [checker] and [server] sections onto checker.Options.
func CheckerOptions(cfg *config.Config) checker.Options {
	opts := checker.DefaultOptions()
	if cfg.Checker.Threshold > 0 {
		opts.Threshold = cfg.Checker.Threshold
	}
	if cfg.Checker.SuggestionLimit > 0 {
		opts.Limit = cfg.Checker.SuggestionLimit
	}
	opts.DictAlternatives = cfg.Checker.DictAlternatives
	opts.DictMinScore = cfg.Checker.DictThreshold
	opts.CacheSize = cfg.Checker.CacheSize
	if cfg.Server.MinPrefix > 0 {
		opts.MinPrefix = cfg.Server.MinPrefix
	}
	return opts
}

// LoadLexicon merges the base list, the configured files and, when a Redis address
// is set, the shared user words. An unreachable Redis is logged and skipped.
func LoadLexicon(ctx context.Context, cfg config.LexiconConfig) (*lexicon.Lexicon, error) {
	lex, err := lexicon.Load(lexicon.Sources{
		DefinitionsPath: cfg.DefinitionsPath,
		WordListPath:    cfg.WordListPath,
		SnapshotPath:    cfg.SnapshotPath,
	})
	if err != nil {
		return nil, err
	}
	if cfg.RedisAddr == "" {
		return lex, nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	uw, err := lexicon.DialUserWords(ctx, cfg.RedisAddr, cfg.RedisKey)
	if err != nil {
		log.Warnf("User words unavailable: %v", err)
		return lex, nil
	}
	defer uw.Close()
	n, err := uw.MergeInto(ctx, lex)
	if err != nil {
		log.Warnf("User words unavailable: %v", err)
		return lex, nil
	}
	log.Debugf("Merged %d user words from %s", n, uw.Key())
	return lex, nil
}

// LoadModel reads the model from the snapshot file, then the bbolt database.
// When neither holds one it trains on the seed corpus if allowed, else returns nil:
// prediction and autocomplete then degrade instead of failing.
func LoadModel(cfg config.ModelConfig) (*ngram.Model, error) {
	if cfg.SnapshotPath != "" {
		m, err := ngram.LoadFile(cfg.SnapshotPath)
		if err == nil {
			log.Debugf("Model loaded from %s", cfg.SnapshotPath)
			return m, nil
		}
		if !errors.Is(err, ngram.ErrNoModel) {
			return nil, err
		}
	}
	if cfg.DBPath != "" {
		m, err := loadModelDB(cfg.DBPath)
		if err == nil {
			log.Debugf("Model loaded from %s", cfg.DBPath)
			return m, nil
		}
		if !errors.Is(err, ngram.ErrNoModel) {
			return nil, err
		}
	}
	if !cfg.TrainSeed {
		log.Warn("No n-gram model found, prediction disabled")
		return nil, nil
	}
	order := cfg.Order
	if order == 0 {
		order = ngram.DefaultOrder
	}
	return ngram.NewSeeded(order)
}

func loadModelDB(path string) (*ngram.Model, error) {
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return ngram.Load(s, store.DefaultKey)
}

// New loads everything the config points at and builds the request handler.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	model, err := LoadModel(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	a := &App{Config: cfg, Model: model}

	c, err := a.BuildChecker(ctx)
	if err != nil {
		return nil, err
	}
	a.Handler, err = server.NewHandler(c, cfg.Server)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// BuildChecker reloads the lexicon and builds a fresh checker over it and the
// loaded model. Each checker gets its own ranking cache.
func (a *App) BuildChecker(ctx context.Context) (*checker.Checker, error) {
	lex, err := LoadLexicon(ctx, a.Config.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	log.Debugf("Lexicon ready: %d words", lex.Len())
	return checker.New(lex, a.Model, CheckerOptions(a.Config))
}

// Reload rebuilds the checker and swaps it into the handler. On failure the
// current checker keeps serving.
func (a *App) Reload(ctx context.Context) error {
	c, err := a.BuildChecker(ctx)
	if err != nil {
		log.Errorf("Reload failed, keeping current lexicon: %v", err)
		return err
	}
	a.Handler.Swap(c)
	log.Infof("Lexicon reloaded: %d words", c.Lexicon().Len())
	return nil
}

// Watch reloads the checker whenever a configured lexicon file changes.
// Only the watcher goroutine calls Reload.
func (a *App) Watch(ctx context.Context, debounce time.Duration) error {
	lc := a.Config.Lexicon
	w, err := watch.New([]string{lc.DefinitionsPath, lc.WordListPath, lc.SnapshotPath}, debounce, func() {
		_ = a.Reload(ctx)
	})
	if err != nil {
		return fmt.Errorf("watch lexicon: %w", err)
	}
	a.watcher = w
	w.Start()
	return nil
}

// Close stops the watcher, if any.
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Stop()
}
