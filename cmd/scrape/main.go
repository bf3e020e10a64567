// Command scrape harvests content from gisti.org into JSON collections
// under the content directory. Pages are cached on disk, so re-runs are
// cheap and mostly offline.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gisti-refonte/refonte/fs"
	"github.com/gisti-refonte/refonte/goquery"
	refontehttp "github.com/gisti-refonte/refonte/http"
	"github.com/gisti-refonte/refonte/scrape"
	refonteslog "github.com/gisti-refonte/refonte/slog"
	"github.com/gisti-refonte/refonte/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Degraded scrape phases
// (unreachable pages, missing markup) are logged and never produce a
// non-zero exit; only setup failures do.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrape"),
		kong.Description("Harvest gisti.org content into JSON collections"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cache := refonteslog.NewLoggingCacheStore(fs.NewCacheStore(cli.CacheDir), logger)
	fetcher := refonteslog.NewLoggingFetcher(refontehttp.NewFetcher(
		refontehttp.WithCache(cache),
		refontehttp.WithInterval(cli.Rate),
		refontehttp.WithTimeout(cli.Timeout),
		refontehttp.WithUserAgent(cli.UserAgent),
	), logger)

	extractor := goquery.NewExtractor(goquery.WithFallback(trafilatura.NewExtractor()))

	s := &scrape.Scraper{
		BaseURL:  cli.BaseURL,
		Fetcher:  fetcher,
		Articles: extractor,
		Store:    fs.NewContentStore(cli.ContentDir),
		Logger:   logger,
	}

	sum := s.Run(ctx)

	fmt.Fprintf(stdout, "featured: %d\n", sum.Featured)
	fmt.Fprintf(stdout, "articles: %d\n", sum.Articles)
	fmt.Fprintf(stdout, "dossiers: %d\n", sum.Dossiers)
	fmt.Fprintf(stdout, "publications: %d\n", sum.Publications)
	fmt.Fprintf(stdout, "formations: %d\n", sum.Formations)
	fmt.Fprintf(stdout, "pratique: %d\n", sum.Pratique)
	fmt.Fprintf(stdout, "keywords: %d\n", sum.Keywords)

	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL    string        `default:"https://www.gisti.org" help:"Site to harvest"`
	CacheDir   string        `type:"path" default:".cache" help:"Raw page cache directory"`
	ContentDir string        `type:"path" default:"content" help:"JSON collection output directory"`
	Rate       time.Duration `default:"2s" help:"Minimum delay between network requests"`
	Timeout    time.Duration `default:"45s" help:"Per-request timeout"`
	UserAgent  string        `default:"GISTI-Redesign-Scraper/2.0 (educational prototype)" help:"User-Agent header"`
	Verbose    bool          `short:"v" help:"Enable debug logging"`
}
