package dashboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/holista-dev/holista/internal/config"
	"github.com/holista-dev/holista/internal/source"
	"github.com/holista-dev/holista/internal/tabular"
)

// BuildFunc computes a page from its decoded dataset.
type BuildFunc func(ds *tabular.Dataset, opts Options) *Result

// Page describes one report page and where its data lives.
type Page struct {
	Name  string
	Title string
	// Key is the ftp.paths entry holding the extract.
	Key   string
	Build BuildFunc
	// Candidates, when set, lists fallback paths tried in order instead
	// of resolving Key alone.
	Candidates func(cfg config.FTPConfig) []string
}

var pages = []Page{
	{Name: "receivables", Title: "Overdue Payment", Key: config.KeyOverdue, Build: Receivables},
	{Name: "payables", Title: "Overdue Creditor", Key: config.KeyOverdueCreditor, Build: Payables},
	{Name: "sales-overdue", Title: "Overdue Sales Orders", Key: config.KeyOpenSalesOrders, Build: SalesOverdue},
	{Name: "sales", Title: "Sales Order", Key: config.KeyOpenSalesOrders, Build: Sales},
	{Name: "purchases", Title: "Purchase Order", Key: config.KeyOpenPurchases, Build: Purchases},
	{Name: "stock-status", Title: "Stock Status", Key: config.KeyStockStatus, Build: StockStatus},
	{
		Name:       "stock-ageing",
		Title:      "Stock Ageing",
		Key:        config.KeyInventory,
		Build:      StockAgeing,
		Candidates: source.StockAgeingCandidates,
	},
}

// Pages returns every page in menu order.
func Pages() []Page {
	return append([]Page(nil), pages...)
}

// Lookup finds a page by name.
func Lookup(name string) (Page, bool) {
	for _, p := range pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}

// Runner loads page data and builds results.
type Runner struct {
	loader *source.Loader
	cfg    config.FTPConfig
}

// NewRunner creates a Runner.
func NewRunner(loader *source.Loader, cfg config.FTPConfig) *Runner {
	return &Runner{loader: loader, cfg: cfg}
}

// Run loads and builds one page. Load failures are returned as errors;
// data-quality problems come back as warnings on the result.
func (r *Runner) Run(ctx context.Context, p Page, opts Options) (*Result, error) {
	var (
		loaded *source.Loaded
		err    error
	)
	if p.Candidates != nil {
		loaded, err = r.loader.LoadFirst(ctx, p.Candidates(r.cfg))
	} else {
		loaded, err = r.loader.Load(ctx, p.Key, "")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Title, err)
	}

	res := p.Build(loaded.Dataset, opts)
	res.Source = loaded.Path
	if len(res.Warnings) > 0 {
		zerolog.Ctx(ctx).Warn().
			Str("page", p.Name).
			Int("warnings", len(res.Warnings)).
			Msg("page built with data-quality warnings")
	}
	return res, nil
}
