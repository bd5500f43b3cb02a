package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/tagexport"
	"github.com/fwojciec/tagexport/export"
	"golang.org/x/sync/errgroup"
)

// ExportCmd exports one CSV file per URL.
type ExportCmd struct {
	URLs        []string
	Tags        tagexport.Selection
	Concurrency int
	// RPS caps page loads per second to each host.
	RPS float64
}

type exportResult struct {
	export *tagexport.Export
	err    error
}

// Run exports every URL and reports one line per URL in input order.
// A failed page does not stop the others.
func (c *ExportCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	limiter := export.NewHostLimiter(c.RPS)

	results := make([]exportResult, len(c.URLs))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, url := range c.URLs {
		g.Go(func() error {
			if err := limiter.Wait(deps.Ctx, url); err != nil {
				results[i].err = err
				return nil
			}
			results[i].export, results[i].err = deps.Exports.Export(deps.Ctx, url, c.Tags)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.URLs[i], errorMessage(r.err))
			continue
		}
		if !deps.Quiet {
			path := filepath.Join(deps.OutDir, r.export.Filename)
			fmt.Fprintf(deps.Stdout, "%d elements extracted to %s\n", r.export.Count, path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(c.URLs))
	}
	return nil
}

// errorMessage returns the user-facing message of err. Internal errors
// carry no message of their own, so their text is shown instead.
func errorMessage(err error) string {
	if tagexport.ErrorCode(err) == tagexport.EINTERNAL {
		return err.Error()
	}
	return tagexport.ErrorMessage(err)
}
