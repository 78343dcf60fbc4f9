// Command paperprobe generates sample AI-written papers and runs simulated
// AI-detection over local documents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/PaperProbe/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "paperprobe: %v\n", err)
	}
	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "paperprobe: %v\n", err)
		os.Exit(1)
	}
}

// execute runs one command line and tears down whatever it started, also
// when the command fails.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := &rootOptions{}
	rootCmd := newRootCommand(opts, stdout, stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if opts.app != nil {
		opts.app.Close()
	}
	return err
}

// rootOptions is shared by every subcommand through the persistent hooks.
type rootOptions struct {
	store string
	app   *app
}

func newRootCommand(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paperprobe",
		Short: "Generate and detect AI-written research papers",
		Long: `PaperProbe fabricates sample research papers and runs a simulated
AI-detection pipeline over text documents. Theme and preferences persist
between runs in the configured store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.store != "" {
				cfg.StoreBackend = opts.store
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			a, err := newApp(cmd.Context(), cfg, stdout, stderr)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "Persistence backend: file, memory or postgres (overrides PAPERPROBE_STORE)")
	cmd.AddCommand(
		newGenerateCmd(opts),
		newAnalyzeCmd(opts),
		newPrefsCmd(opts),
		newThemeCmd(opts),
		newTabCmd(opts),
	)
	return cmd
}
