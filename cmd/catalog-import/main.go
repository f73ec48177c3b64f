// Command catalog-import merges gzip-compressed JSONL product feeds into a
// single catalog JSON file. Each feed line is one product spec; the first
// occurrence of a product name wins. Per-feed bloom filters are built
// concurrently and used to report names that appear in more than one feed.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/retail-store-challenge/internal/catalog"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "catalog.json", "path of the merged catalog file")
	flag.Parse()

	feeds := flag.Args()
	if len(feeds) == 0 {
		slog.Error("at least one feed file is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, feeds, outPath); err != nil {
		slog.Error("catalog import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog import completed successfully")
}

func run(ctx context.Context, feeds []string, outPath string) error {
	for _, f := range feeds {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check feed %s", f)
		}
	}

	// Pass 1: one bloom filter of product names per feed, built concurrently.
	slog.Info("pass 1: building bloom filters", slog.Int("feeds", len(feeds)))

	filters, err := buildBloomFilters(ctx, feeds)
	if err != nil {
		return errors.Wrap(err, "build bloom filters")
	}

	// Pass 2: merge feeds in order, first occurrence of a name wins.
	slog.Info("pass 2: merging feeds")

	specs, overlaps, err := mergeFeeds(ctx, feeds, filters)
	if err != nil {
		return errors.Wrap(err, "merge feeds")
	}

	slog.Info("feeds merged",
		slog.Int("products", len(specs)),
		slog.Int("cross_feed_overlaps", overlaps),
	)

	// Validate the merged document by building a store from it.
	if _, err := catalog.Build(specs); err != nil {
		return errors.Wrap(err, "validate merged catalog")
	}

	return writeCatalog(outPath, specs)
}

// buildBloomFilters creates one filter of product names per feed, concurrently.
func buildBloomFilters(ctx context.Context, feeds []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(feeds))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range feeds {
		g.Go(buildFilterForFeed(ctx, i, f, filters))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return filters, nil
}

func buildFilterForFeed(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter) func() error {
	return func() error {
		filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		var count uint64

		if err := streamFeed(ctx, path, func(spec catalog.ProductSpec) error {
			filter.AddString(spec.Name)
			count++
			return nil
		}); err != nil {
			return errors.Wrapf(err, "build filter for feed %d", idx+1)
		}

		slog.Info("pass 1 complete", slog.Int("feed", idx+1), slog.Uint64("products", count))
		filters[idx] = filter
		return nil
	}
}

// mergeFeeds streams the feeds in order, keeping the first spec per name and
// counting names that other feeds' filters also claim to contain.
func mergeFeeds(ctx context.Context, feeds []string, filters []*bloom.BloomFilter) ([]catalog.ProductSpec, int, error) {
	var (
		specs    []catalog.ProductSpec
		overlaps int
	)
	seen := make(map[string]struct{})

	for i, f := range feeds {
		if err := streamFeed(ctx, f, func(spec catalog.ProductSpec) error {
			if _, ok := seen[spec.Name]; ok {
				return nil
			}
			seen[spec.Name] = struct{}{}
			specs = append(specs, spec)

			for j, filter := range filters {
				if j != i && filter.TestString(spec.Name) {
					overlaps++
					break
				}
			}
			return nil
		}); err != nil {
			return nil, 0, errors.Wrapf(err, "merge feed %d", i+1)
		}
	}

	return specs, overlaps, nil
}

// streamFeed opens a gzip-compressed JSONL feed and calls fn per spec.
func streamFeed(ctx context.Context, path string, fn func(catalog.ProductSpec) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var spec catalog.ProductSpec
		if err := json.Unmarshal(line, &spec); err != nil {
			return errors.Wrapf(err, "parse feed line in %s", path)
		}
		if err := fn(spec); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}

func writeCatalog(path string, specs []catalog.ProductSpec) error {
	data, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal catalog")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	slog.Info("catalog written", slog.String("path", path), slog.Int("products", len(specs)))
	return nil
}
