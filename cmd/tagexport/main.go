package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tagexport"
	"github.com/fwojciec/tagexport/export"
	"github.com/fwojciec/tagexport/fs"
	"github.com/fwojciec/tagexport/goquery"
	tehttp "github.com/fwojciec/tagexport/http"
	"github.com/fwojciec/tagexport/rod"
	teslog "github.com/fwojciec/tagexport/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Loader overrides the page loader chosen from flags. Used by tests.
	Loader tagexport.Loader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tagexport"),
		kong.Description("Export selected page elements with their computed styles to CSV"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	tags, err := tagexport.ParseSelection(cli.Tags)
	if err != nil {
		return fmt.Errorf("%s", tagexport.ErrorMessage(err))
	}
	if cli.Stdout && len(cli.URLs) > 1 {
		return fmt.Errorf("--stdout accepts a single URL")
	}

	handler := slog.Handler(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		handler = slog.NewTextHandler(stderr, nil)
	}
	logger := slog.New(handler)

	loader := m.Loader
	if loader == nil {
		if loader, err = newLoader(cli, logger); err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
	}
	loader = teslog.NewLoggingLoader(loader, logger)
	if cli.Retries > 0 {
		loader = export.NewRetryLoader(loader, retryDelays(cli.Retries), logger)
	}
	defer loader.Close()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		OutDir: cli.Out,
	}

	var writer tagexport.ExportWriter = fs.NewWriter(cli.Out)
	if cli.Stdout {
		writer = &streamWriter{w: stdout}
		deps.Quiet = true
	}

	deps.Exports = teslog.NewLoggingExportService(&export.Service{
		Loader: loader,
		Writer: writer,
	}, logger)

	cmd := &ExportCmd{
		URLs:        cli.URLs,
		Tags:        tags,
		Concurrency: cli.Concurrency,
		RPS:         cli.RPS,
	}
	return cmd.Run(deps)
}

// newLoader returns the static loader when requested, the browser otherwise.
func newLoader(cli *CLI, logger *slog.Logger) (tagexport.Loader, error) {
	if cli.Static {
		fetcher := tehttp.NewFetcher(tehttp.WithTimeout(cli.Timeout))
		return goquery.NewLoader(teslog.NewLoggingFetcher(fetcher, logger)), nil
	}
	return rod.NewLoader(rod.WithTimeout(cli.Timeout))
}

// retryDelays doubles the wait after each failed attempt, starting at 1s.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}
