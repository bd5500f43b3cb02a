package main

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/tagexport"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Tags        string        `short:"t" default:"h1,h2,h3,h4,h5,h6,p,img" env:"TAGEXPORT_TAGS" help:"Comma-separated tag names to extract"`
	Out         string        `short:"o" default:"." env:"TAGEXPORT_OUT" type:"path" help:"Directory to write CSV files to"`
	Stdout      bool          `help:"Write the CSV to stdout instead of a file"`
	Static      bool          `short:"s" help:"Parse the served HTML without a browser (no JavaScript, approximated styles)"`
	Timeout     time.Duration `default:"10s" help:"Page load timeout"`
	Concurrency int           `short:"c" default:"2" help:"Pages exported in parallel"`
	RPS         float64       `name:"rps" default:"1" help:"Maximum page loads per second to each host (0 for no limit)"`
	Retries     int           `default:"3" help:"Retries for pages that fail to load"`
	Verbose     bool          `short:"v" help:"Log page loads and exports to stderr"`
	URLs        []string      `arg:"" name:"url" required:"" help:"Page URLs to export"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Exports tagexport.ExportService

	// OutDir is where exported files are written.
	OutDir string

	// Quiet suppresses success lines, e.g. when the CSV itself goes to stdout.
	Quiet bool
}

// streamWriter writes exports to a stream instead of files.
type streamWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *streamWriter) WriteExport(_ context.Context, export *tagexport.Export) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, export.CSV)
	return err
}
