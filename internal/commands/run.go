package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/holista-dev/holista/internal/dashboard"
	"github.com/holista-dev/holista/internal/fetch"
	"github.com/holista-dev/holista/internal/report"
	"github.com/holista-dev/holista/internal/source"
)

const dateLayout = "2006-01-02"

// filters are the page flags shared by every dashboard command.
type filters struct {
	asOf       string
	states     []string
	allStates  bool
	from       string
	to         string
	warehouses []string
}

func (f *filters) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "reference date for ages (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&f.states, "state", nil, "state/city to include on order pages (repeatable)")
	cmd.Flags().BoolVar(&f.allStates, "all-states", false, "include every state/city on order pages")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest posting date on order pages (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "latest posting date on order pages (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.warehouses, "warehouse", nil, "warehouse code on the stock status page (repeatable)")
}

func (f *filters) options() (dashboard.Options, error) {
	opts := dashboard.Options{
		States:     f.states,
		AllStates:  f.allStates,
		Warehouses: f.warehouses,
	}
	var err error
	if opts.Now, err = parseDate("as-of", f.asOf); err != nil {
		return opts, err
	}
	if opts.From, err = parseDate("from", f.from); err != nil {
		return opts, err
	}
	if opts.To, err = parseDate("to", f.to); err != nil {
		return opts, err
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && opts.To.Before(opts.From) {
		return opts, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return opts, nil
}

func parseDate(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", flag, s)
	}
	return t, nil
}

func newPageCommands(a *app) []*cobra.Command {
	var cmds []*cobra.Command
	for _, p := range dashboard.Pages() {
		p := p
		var f filters
		cmd := &cobra.Command{
			Use:   p.Name,
			Short: fmt.Sprintf("Show the %s dashboard", p.Title),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runPages(cmd, []dashboard.Page{p}, &f)
			},
		}
		f.register(cmd)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func newAllCommand(a *app) *cobra.Command {
	var f filters
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Show every dashboard, continuing past failed pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPages(cmd, dashboard.Pages(), &f)
		},
	}
	f.register(cmd)
	return cmd
}

// runPages renders each page in order. A failing page is reported in
// place and the rest still run; the command fails if any page did.
func (a *app) runPages(cmd *cobra.Command, pages []dashboard.Page, f *filters) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	w, err := report.New(a.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	next := a.fetcher
	if next == nil {
		next = fetch.NewFTPFetcher(a.cfg.FTP, nil)
	}
	cache := fetch.NewCache(next)
	runner := dashboard.NewRunner(source.NewLoader(cache, a.cfg.FTP), a.cfg.FTP)

	failed := 0
	for _, p := range pages {
		res, err := runner.Run(ctx, p, opts)
		if err != nil {
			failed++
			logger.Error().Err(err).Str("page", p.Name).Msg("page failed")
			if werr := w.WriteError(p.Name, err); werr != nil {
				return werr
			}
			continue
		}
		if err := w.Write(res); err != nil {
			return err
		}
	}

	stats := cache.Stats()
	logger.Debug().
		Int("entries", stats.Entries).
		Int("hits", stats.Hits).
		Int("misses", stats.Misses).
		Msg("fetch cache")

	if failed > 0 {
		return fmt.Errorf("%d of %d page(s) failed", failed, len(pages))
	}
	return nil
}
