package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/devbush/autoedit/internal/adapters/cli/tui"
	"github.com/devbush/autoedit/internal/adapters/ffmpeg"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage external tools (ffmpeg, yt-dlp, engine)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to latest version",
		RunE:  runDepsUpdate,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp, and ffmpeg on Windows",
		RunE:  runDepsInstall,
	}

	cmd.AddCommand(statusCmd, updateCmd, installCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp(AppSettings{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependency Status:")
	fmt.Fprintln(out)

	switch {
	case !app.FFmpeg.Available():
		fmt.Fprintln(out, "  ffmpeg:   not found")
	case app.FFmpeg.Bundled:
		fmt.Fprintf(out, "  ffmpeg:   bundled (%s)\n", app.FFmpeg.Path)
	default:
		fmt.Fprintf(out, "  ffmpeg:   installed (%s)\n", app.FFmpeg.Path)
	}

	if app.Downloader.IsAvailable() {
		fmt.Fprintf(out, "  yt-dlp:   installed (%s)\n", app.Downloader.GetBinaryPath())
	} else {
		fmt.Fprintln(out, "  yt-dlp:   not found (only needed for URLs)")
	}

	if path := app.Engine.BinaryPath(); path != "" {
		fmt.Fprintf(out, "  engine:   installed (%s)\n", path)
	} else {
		fmt.Fprintln(out, "  engine:   not found")
	}
	fmt.Fprintln(out)

	return nil
}

func runDepsUpdate(cmd *cobra.Command, args []string) error {
	app, err := newApp(AppSettings{})
	if err != nil {
		return err
	}

	if !app.Downloader.IsAvailable() {
		return fmt.Errorf("yt-dlp is not installed. Run 'auto-editor deps install' first")
	}

	app.Log.Info("Updating yt-dlp...")
	if err := app.Downloader.Update(cmd.Context()); err != nil {
		return err
	}

	app.Log.Success("yt-dlp updated")
	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	app, err := newApp(AppSettings{})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if app.Downloader.IsAvailable() {
		app.Log.Info("yt-dlp is already installed")
	} else {
		progress := tui.NewDownloadProgress(out, "Installing yt-dlp", false)
		err := app.Downloader.Install(cmd.Context(), progress.Update)
		progress.Done()
		if err != nil {
			return err
		}
		app.Log.Success("yt-dlp installed")
	}

	if app.FFmpeg.Available() {
		app.Log.Info("ffmpeg is already installed")
		return nil
	}
	if runtime.GOOS != "windows" {
		app.Log.Warn("%s", ffmpeg.Instructions())
		return nil
	}

	progress := tui.NewDownloadProgress(out, "Installing ffmpeg", false)
	path, err := ffmpeg.Install(cmd.Context(), progress.Update)
	progress.Done()
	if err != nil {
		return err
	}
	app.Log.Success("ffmpeg installed (%s)", path)
	return nil
}
