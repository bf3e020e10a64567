// Command inject splices the stored JSON collections into the redesigned
// HTML pages. It reads only the content directory; running it before the
// scraper has populated a collection leaves the affected pages untouched.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gisti-refonte/refonte/fs"
	"github.com/gisti-refonte/refonte/inject"
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

// Run executes the CLI with the given arguments. Missing pages, absent
// anchors, and empty collections are logged skips, never failures.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("inject"),
		kong.Description("Inject stored content into the redesigned HTML pages"),
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

	in := &inject.Injector{
		Store:   fs.NewContentStore(cli.ContentDir),
		SiteDir: cli.SiteDir,
		Logger:  logger,
	}
	in.Run()

	fmt.Fprintln(stdout, "injection complete")
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ContentDir string `type:"path" default:"content" help:"JSON collection directory written by scrape"`
	SiteDir    string `type:"path" default:"." help:"Directory holding the HTML pages to rewrite"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`
}
