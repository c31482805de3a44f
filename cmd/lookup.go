package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	"whoisresolver/internal/config"
	"whoisresolver/internal/resolver"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/whois"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// lookupAll resolves names with at most concurrency lookups in flight and
// writes one JSON report per name, in argument order. Invalid names are
// reported as {"domain":..., "error":...} and make the returned error non-nil;
// the other names are still resolved.
func lookupAll(ctx context.Context, res resolver.Resolver, names []string, concurrency int, now func() time.Time,
	out io.Writer) error {
	if concurrency < 1 {
		concurrency = 1
	}

	reports := make([]any, len(names))
	invalid := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range names {
		g.Go(func() error {
			result, err := res.Resolve(gctx, name)
			if err != nil {
				logger.Warn(gctx, "could not look up domain", logger.Domain(name), logger.ErrorKind(err), zap.Error(err))
				reports[i] = domain.WhoisResult{Domain: name, Error: err.Error()}
				invalid[i] = true

				return nil
			}
			reports[i] = whois.NewReport(result, now())

			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	var failed int
	for i, report := range reports {
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("could not write report: %w", err)
		}
		if invalid[i] {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d domain names were invalid", failed, len(names))
	}

	return nil
}

func lookupCommand(cfg *config.Config) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:          "lookup <domain>...",
		Short:        "Resolves registration data for one or more domains and prints it as JSON",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res := getResolver(ctx, cfg, nil)

			return lookupAll(ctx, res, args, concurrency, time.Now, os.Stdout)
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "n", cfg.Lookup.Concurrency, "Maximum number of concurrent lookups")

	return cmd
}
