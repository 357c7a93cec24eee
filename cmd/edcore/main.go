// Package main is a headless smoke-test driver for the editor kernel: it
// loads text, lays it out at a given viewport width and wrap mode, and
// prints the resulting HeadlessGrid to stdout. It is a debugging aid, not
// a product surface — the kernel itself has no UI.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dshills/edcore/internal/kernel"
	"github.com/dshills/edcore/internal/layout"
	"github.com/dshills/edcore/internal/snapshot"
	"github.com/dshills/edcore/internal/workspace"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	textPath string
	width    int
	wrap     string
}

func run() int {
	opts, exitCode, handled := parseFlags()
	if handled {
		return exitCode
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	text, err := loadText(opts.textPath)
	if err != nil {
		logger.Error("failed to load text", "path", opts.textPath, "err", err)
		return 1
	}

	mode, err := parseWrapMode(opts.wrap)
	if err != nil {
		logger.Error("invalid wrap mode", "wrap", opts.wrap, "err", err)
		return 1
	}

	buf, err := kernel.NewFromString(text)
	if err != nil {
		logger.Error("failed to construct buffer", "err", err)
		return 1
	}

	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)
	v, err := ws.NewView(bufID)
	if err != nil {
		logger.Error("failed to open view", "err", err)
		return 1
	}
	v.SetViewportWidth(opts.width)
	v.SetWrapMode(mode)

	total := v.LineCount()
	rows := snapshot.BuildHeadlessGrid(v, 0, totalVisualRows(v, total))
	printGrid(rows)
	return 0
}

func totalVisualRows(v *workspace.View, lineCount int) int {
	// Upper bound: every line could wrap, but never fewer than lineCount
	// rows are needed to reach end of document in one BuildHeadlessGrid
	// call; BuildHeadlessGrid itself stops early once the buffer is
	// exhausted, so an overestimate here costs nothing but a capacity
	// allocation.
	const maxRowsPerLine = 64
	return lineCount * maxRowsPerLine
}

func printGrid(rows []snapshot.VisualRow) {
	for _, row := range rows {
		var sb []rune
		for _, c := range row.Cells {
			if c.Continuation {
				continue
			}
			if c.Rune == 0 {
				sb = append(sb, ' ')
				continue
			}
			sb = append(sb, c.Rune)
		}
		fmt.Printf("%4d: %s\n", row.LogicalLine, string(sb))
	}
}

func loadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parseWrapMode(name string) (layout.WrapMode, error) {
	switch name {
	case "", "none":
		return layout.WrapNone, nil
	case "char":
		return layout.WrapChar, nil
	case "word":
		return layout.WrapWord, nil
	default:
		return layout.WrapNone, fmt.Errorf("unknown wrap mode %q (want none, char, word)", name)
	}
}

func parseFlags() (options, int, bool) {
	var opts options
	var showVersion, showHelp bool

	flag.StringVar(&opts.textPath, "text", "", "Path to a text file to load")
	flag.StringVar(&opts.textPath, "t", "", "Path to a text file to load (shorthand)")
	flag.IntVar(&opts.width, "width", 80, "Viewport width in cells")
	flag.IntVar(&opts.width, "w", 80, "Viewport width in cells (shorthand)")
	flag.StringVar(&opts.wrap, "wrap", "none", "Wrap mode: none, char, word")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "edcore - headless editor kernel smoke test\n\n")
		fmt.Fprintf(os.Stderr, "Usage: edcore [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return opts, 0, true
	}
	if showVersion {
		fmt.Printf("edcore %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}
	return opts, 0, false
}
