package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/devbush/autoedit/internal/adapters/cli/tui"
)

// swapped in tests
var (
	confirm         = tui.RunConfirm
	stdinIsTerminal = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
)

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show the frame rate probe cache",
		RunE:  runCacheStatus,
	}

	var all, yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove expired cache entries, or everything with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(cmd, all, yes)
		},
	}
	clearCmd.Flags().BoolVar(&all, "all", false, "remove every cache entry and engine scratch file")
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(clearCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp(AppSettings{})
	if err != nil {
		return err
	}

	stats, err := app.CacheSvc.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cache Statistics:")
	fmt.Fprintf(out, "  Dir:   %s\n", stats.Dir)
	fmt.Fprintf(out, "  Items: %d\n", stats.ItemCount)
	fmt.Fprintf(out, "  Size:  %s\n", tui.FormatSize(stats.TotalSize))
	fmt.Fprintf(out, "  TTL:   %s\n", app.Config.Defaults.CacheTTL)
	fmt.Fprintln(out)

	return nil
}

func runCacheClear(cmd *cobra.Command, all, yes bool) error {
	app, err := newApp(AppSettings{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !all {
		cleaned, err := app.CacheSvc.CleanExpired(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d expired entries\n", cleaned)
		return nil
	}

	if !yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to clear the cache without a terminal; pass --yes")
		}
		ok, err := confirm(fmt.Sprintf("Remove everything in %s?", app.Cache.Dir()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	if err := app.CacheSvc.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(out, "All cache entries cleared")
	return nil
}
