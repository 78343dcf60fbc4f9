package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/PaperProbe/internal/ingest"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/persist"
	"github.com/dharsanguruparan/PaperProbe/internal/processing"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample AI-written research paper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			a.store.Dispatch(state.SetActiveTab{Tab: model.TabGenerator})
			if !a.processor.Submit(processing.GenerateJob(a.generator)) {
				return errors.New("generation was not started")
			}
			a.processor.Wait()

			snap := a.store.Snapshot()
			if snap.GeneratedPaper == nil {
				return errors.New("no paper was generated")
			}
			if asJSON {
				return writeJSON(a.stdout, snap.GeneratedPaper)
			}
			printPaper(a.stdout, *snap.GeneratedPaper, snap.Preferences.ShowDetectionHints)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the paper as JSON")
	return cmd
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Run AI detection over local documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			a.store.Dispatch(state.SetActiveTab{Tab: model.TabDetector})

			uploads := make([]ingest.Upload, 0, len(args))
			for _, path := range args {
				up, err := ingest.FromPath(path)
				if err != nil {
					return err
				}
				uploads = append(uploads, up)
			}

			res := a.ingestor.Upload(cmd.Context(), uploads)
			if len(res.Accepted) == 0 {
				return fmt.Errorf("none of the %d file(s) were accepted", len(uploads))
			}
			// with auto-analyze on, the upload hook already queued the batch
			if !a.store.Snapshot().Preferences.AutoAnalyze {
				a.processor.Submit(processing.AnalyzeAllJob(a.orchestrator))
			}
			a.ingestor.Wait()
			a.processor.Wait()
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			snap := a.store.Snapshot()
			files := make([]model.FileRecord, 0, len(res.Accepted))
			for _, id := range res.Accepted {
				if f, ok := snap.File(id); ok {
					files = append(files, f)
				}
			}
			if asJSON {
				return writeJSON(a.stdout, files)
			}
			for _, f := range files {
				printReport(a.stdout, f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print file records with their results as JSON")
	return cmd
}

func newPrefsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change persisted preferences",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printPreferences(opts.app.stdout, opts.app.store.Snapshot().Preferences)
			},
		},
		newPrefsSetCmd(opts),
		&cobra.Command{
			Use:   "reset",
			Short: "Restore default preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := opts.app
				a.store.Dispatch(state.ResetPreferences{})
				return printPreferences(a.stdout, a.store.Snapshot().Preferences)
			},
		},
	)
	return cmd
}

func newPrefsSetCmd(opts *rootOptions) *cobra.Command {
	var (
		autoAnalyze bool
		hints       bool
		saveHistory bool
		maxSize     int64
		formats     []string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.PreferencesPatch
			flags := cmd.Flags()
			if flags.Changed("auto-analyze") {
				patch.AutoAnalyze = &autoAnalyze
			}
			if flags.Changed("hints") {
				patch.ShowDetectionHints = &hints
			}
			if flags.Changed("save-history") {
				patch.SaveHistory = &saveHistory
			}
			if flags.Changed("max-size") {
				if maxSize <= 0 {
					return fmt.Errorf("max-size must be positive, got %d", maxSize)
				}
				patch.MaxFileSize = &maxSize
			}
			if flags.Changed("formats") {
				patch.AllowedFormats = normalizeFormats(formats)
			}
			if patch.IsEmpty() {
				return errors.New("no preference flags given")
			}
			a := opts.app
			a.store.Dispatch(state.UpdatePreferences{Patch: patch})
			return printPreferences(a.stdout, a.store.Snapshot().Preferences)
		},
	}
	cmd.Flags().BoolVar(&autoAnalyze, "auto-analyze", true, "Analyze files as soon as they are accepted")
	cmd.Flags().BoolVar(&hints, "hints", true, "Show detection hints on generated papers")
	cmd.Flags().BoolVar(&saveHistory, "save-history", true, "Keep generated papers in history")
	cmd.Flags().Int64Var(&maxSize, "max-size", model.DefaultMaxFileSize, "Largest accepted file in bytes")
	cmd.Flags().StringSliceVar(&formats, "formats", nil, "Accepted extensions, e.g. .txt,.pdf")
	return cmd
}

// normalizeFormats lower-cases extensions and adds a missing leading dot.
func normalizeFormats(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f == "" {
			continue
		}
		if f[0] != '.' {
			f = "." + f
		}
		out = append(out, ingest.Extension(f))
	}
	return out
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{persist.ThemeDark, persist.ThemeLight, "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if len(args) == 1 {
				switch args[0] {
				case persist.ThemeDark:
					a.store.Dispatch(state.SetTheme{Dark: true})
				case persist.ThemeLight:
					a.store.Dispatch(state.SetTheme{Dark: false})
				case "toggle":
					a.store.Dispatch(state.ToggleDarkMode{})
				default:
					return fmt.Errorf("unknown theme %q", args[0])
				}
			}
			fmt.Fprintln(a.stdout, persist.ThemeName(a.store.Snapshot().DarkMode))
			return nil
		},
	}
}

func newTabCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "tab <generator|detector>",
		Short:     "Switch the active view",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.TabGenerator), string(model.TabDetector)},
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := model.ParseTab(args[0])
			if err != nil {
				return err
			}
			a := opts.app
			a.store.Dispatch(state.SetActiveTab{Tab: tab})
			fmt.Fprintln(a.stdout, a.store.Snapshot().ActiveTab)
			return nil
		},
	}
}
