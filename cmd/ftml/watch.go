package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scpwiki/ftml/internal/cli/config"
	"github.com/scpwiki/ftml/internal/watch"
	"github.com/scpwiki/ftml/pkg/ftml"
)

var watchJSON bool

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print diagnostics as JSON instead of colored text")
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and re-parse changed wikitext files",
	Long: `watch monitors a directory for changed .ftml/.wiki files and
reparses each one from scratch on save, printing its diagnostics. Each
change triggers one independent, full Parse call - there is no incremental
reparse.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if err := os.Chdir(dir); err != nil {
			return fmt.Errorf("cd %s: %w", dir, err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		cat := (*ftml.Catalogue)(nil)
		if cfg.Catalogue.Path != "" {
			cat, err = ftml.LoadCatalogue(cfg.Catalogue.Path)
			if err != nil {
				return fmt.Errorf("load catalogue: %w", err)
			}
		}

		settings := ftml.Settings{
			Layout:              cfg.Parser.Layout,
			AllowHTMLAttributes: cfg.Parser.AllowHTMLAttributes,
			RecursionLimit:      cfg.Parser.RecursionLimit,
			EnableInclude:       cfg.Parser.EnableInclude,
		}

		reparse := func(files []string) error {
			for _, f := range files {
				source, err := os.ReadFile(f)
				if err != nil {
					color.New(color.FgRed).Printf("[Watch] %s: %v\n", f, err)
					continue
				}
				_, diags, err := ftml.Parse(string(source), cat, &settings)
				if err != nil {
					color.New(color.FgRed).Printf("[Watch] %s: %v\n", f, err)
					continue
				}
				reportWatchResult(f, diags)
			}
			return nil
		}

		fw, err := watch.NewFileWatcher(cfg.Watch.Patterns, cfg.Watch.Ignored, reparse)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := fw.Start(); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}

		fmt.Println("ftml watch: watching for changes, Ctrl-C to stop")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		return fw.Stop()
	},
}

func reportWatchResult(file string, diags []*ftml.Diagnostic) {
	if watchJSON {
		enc := json.NewEncoder(os.Stdout)
		_ = enc.Encode(struct {
			File   string              `json:"file"`
			Errors []*ftml.Diagnostic `json:"errors"`
		}{File: file, Errors: diags})
		return
	}
	if len(diags) == 0 {
		color.New(color.FgGreen).Printf("[Watch] %s: ok\n", file)
		return
	}
	color.New(color.FgYellow).Printf("[Watch] %s: %d diagnostic(s)\n", file, len(diags))
	for _, d := range diags {
		fmt.Printf("  - %s at [%d,%d)\n", d.Kind, d.Span.Start, d.Span.End)
	}
}
