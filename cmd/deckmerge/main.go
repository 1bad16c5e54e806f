package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deckmerge/internal/config"
	"github.com/dusk-indust/deckmerge/internal/mcptools"
	"github.com/dusk-indust/deckmerge/internal/orchestrator"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands. It is filled in by the
// root command's PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.ProjectConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "deckmerge",
		Short: "Merge slide decks and structured documents into new presentations",
		Long: `deckmerge extracts outlines from .pptx decks and .docx documents,
aligns deck slides with document sections, and renders the merge as a new
.pptx. Run "deckmerge serve" to expose the same operations as MCP tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a deckmerge.yml (default: ./deckmerge.yml if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newDeckCmd(a),
		newOutlineCmd(a),
		newExtractCmd(a),
		newCombineCmd(a),
		newRenderCmd(a),
		newTablesCmd(a),
		newInitCmd(),
	)
	return root
}

// load reads the project config and builds the logger. Logs always go to
// errOut so stdout stays free for results and MCP traffic.
func (a *app) load(errOut io.Writer) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	level := a.cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if a.cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(errOut, opts)
	} else {
		handler = slog.NewTextHandler(errOut, opts)
	}
	a.logger = slog.New(handler)
	return nil
}

// pipeline builds a Pipeline from the project config and logs its progress
// at debug level. release closes the pipeline and waits for the log drain.
func (a *app) pipeline() (p *orchestrator.Pipeline, release func()) {
	outDir := a.cfg.OutputDir
	if outDir != "" {
		if abs, err := filepath.Abs(outDir); err == nil {
			outDir = abs
		}
	}
	p = orchestrator.NewPipeline(orchestrator.Config{
		OutputDir:      outDir,
		DefaultTitle:   a.cfg.DefaultTitle,
		TitleSlideLine: a.cfg.TitleSlideLine,
		MaxFileSize:    a.cfg.MaxFileSize,
		Workers:        a.cfg.Workers,
		Logger:         a.logger,
	})

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range p.Progress() {
			a.logger.Debug(orchestrator.FormatProgress(ev))
		}
	}()
	return p, func() {
		p.Close()
		<-drained
	}
}

func (a *app) service() (*mcptools.DeckService, *orchestrator.Pipeline, func()) {
	p, release := a.pipeline()
	return mcptools.NewDeckService(p, a.logger), p, release
}
