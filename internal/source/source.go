// Package source loads the dataset behind a logical report key: resolve
// the remote path, fetch it through the cache, decode it.
package source

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/rs/zerolog"

	"github.com/holista-dev/holista/internal/config"
	"github.com/holista-dev/holista/internal/fetch"
	"github.com/holista-dev/holista/internal/tabular"
)

// Well-known stock ageing file names tried next to the inventory report.
var stockAgeingNames = []string{
	"Inventory_Ageing_Report.xlsx",
	"inventory_ageing_report.csv",
	"stock agenging.xlsx",
	"stock ageing.xlsx",
	"stock_ageing.xlsx",
}

// Loader turns report keys into freshly decoded datasets. Bytes are shared
// through the fetcher's cache; every call decodes its own Dataset.
type Loader struct {
	fetcher  fetch.Fetcher
	cfg      config.FTPConfig
	decoders *tabular.Registry
}

// NewLoader creates a Loader using the default decoders.
func NewLoader(f fetch.Fetcher, cfg config.FTPConfig) *Loader {
	return &Loader{fetcher: f, cfg: cfg, decoders: tabular.DefaultRegistry()}
}

// Loaded is a decoded dataset and the remote path it came from.
type Loaded struct {
	Dataset *tabular.Dataset
	Path    string
}

// Load resolves key (or fallback), fetches and decodes it.
func (l *Loader) Load(ctx context.Context, key, fallback string) (*Loaded, error) {
	p := l.cfg.ResolvePath(key, fallback)
	if p == "" {
		return nil, config.MissingPath(key)
	}
	ds, err := l.load(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	return &Loaded{Dataset: ds, Path: p}, nil
}

// LoadFirst tries candidates in order and returns the first that fetches
// and decodes. Blank and repeated candidates are skipped. When every one
// fails the error is a *fetch.ResourceNotFoundError listing each path
// tried and the last cause. Configuration errors stop the search.
func (l *Loader) LoadFirst(ctx context.Context, candidates []string) (*Loaded, error) {
	log := zerolog.Ctx(ctx)
	var tried []string
	var lastErr error
	for _, p := range dedupe(candidates) {
		tried = append(tried, p)
		ds, err := l.load(ctx, p)
		if err == nil {
			if len(tried) > 1 {
				log.Info().Str("path", p).Int("attempts", len(tried)).Msg("resolved dataset from fallback path")
			}
			return &Loaded{Dataset: ds, Path: p}, nil
		}
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			return nil, err
		}
		log.Debug().Err(err).Str("path", p).Msg("candidate path failed")
		lastErr = err
	}
	if len(tried) == 0 {
		return nil, config.MissingPath(config.KeyInventory)
	}
	return nil, &fetch.ResourceNotFoundError{Paths: tried, Cause: lastErr}
}

func (l *Loader) load(ctx context.Context, p string) (*tabular.Dataset, error) {
	data, err := l.fetcher.Fetch(ctx, p)
	if err != nil {
		return nil, err
	}
	ds, err := l.decoders.Decode(data, p)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", p).
		Int("rows", ds.Len()).
		Int("columns", len(ds.Columns())).
		Msg("decoded dataset")
	return ds, nil
}

// StockAgeingCandidates lists the paths the stock ageing report may live
// at: the inventory, stock_ageing and inventory_ageing keys, then the
// well-known names in the inventory report's directory.
func StockAgeingCandidates(cfg config.FTPConfig) []string {
	inventory := cfg.ResolvePath(config.KeyInventory, "")
	candidates := []string{
		inventory,
		cfg.ResolvePath(config.KeyStockAgeing, ""),
		cfg.ResolvePath(config.KeyInventoryAgeing, ""),
	}
	if dir := path.Dir(inventory); inventory != "" && dir != "." {
		for _, name := range stockAgeingNames {
			candidates = append(candidates, path.Join(dir, name))
		}
	}
	return dedupe(candidates)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
