package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytxl/internal/formatter"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/desertthunder/ytxl/internal/tasks"
	"github.com/desertthunder/ytxl/internal/ui"
	"github.com/urfave/cli/v3"
)

const tuiLogPath = "./tmp/ytxl-tui.log"

// TUI launches the interactive terminal UI over the menu operations and playlist add.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(shared.WithLogger(fileLogger, "mode", "tui"))

	model := ui.NewModel(ctx, r.actions())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// actions lists the TUI menu entries; each renders its result as the text shown on the result screen.
func (r *Runner) actions() []ui.Action {
	cfg := r.config.Export

	return []ui.Action{
		{
			Name:        "Video information",
			Summary:     "Title, channel and statistics of one video",
			Prompt:      "YouTube video URL:",
			Placeholder: "https://www.youtube.com/watch?v=...",
			Required:    true,
			Run: func(ctx context.Context, url string, _ chan<- tasks.ProgressUpdate) (string, error) {
				video, err := r.engine.VideoInfo(ctx, url)
				if err != nil {
					return "", err
				}
				var b strings.Builder
				writeVideoInfo(&b, video)
				return b.String(), nil
			},
		},
		{
			Name:        "Mix playlist",
			Summary:     "Videos of the mix seeded by a video",
			Prompt:      "YouTube video URL:",
			Placeholder: "https://www.youtube.com/watch?v=...",
			Required:    true,
			Run: func(ctx context.Context, url string, _ chan<- tasks.ProgressUpdate) (string, error) {
				mix, err := r.engine.MixPlaylist(ctx, url, cfg.MixMaxResults)
				if err != nil {
					return "", err
				}
				if len(mix.Entries) == 0 {
					return "", fmt.Errorf("%w: mix playlist %s is empty", shared.ErrPlaylistNotFound, mix.PlaylistID)
				}
				var b strings.Builder
				writeMix(&b, mix)
				return b.String(), nil
			},
		},
		{
			Name:        "Export playlist",
			Summary:     "Playlist videos with statistics to " + cfg.PlaylistFile,
			Prompt:      "YouTube playlist URL:",
			Placeholder: "https://www.youtube.com/playlist?list=...",
			Required:    true,
			Run: func(ctx context.Context, url string, progress chan<- tasks.ProgressUpdate) (string, error) {
				videos, err := r.engine.PlaylistVideos(ctx, url, cfg.PlaylistMaxResults, progress)
				if err != nil {
					return "", err
				}
				if len(videos) == 0 {
					return "", fmt.Errorf("%w: playlist is empty", shared.ErrPlaylistNotFound)
				}
				path := formatter.EnsureExt("", cfg.PlaylistFile)
				if err := r.engine.ExportVideos(path, formatter.FormatXLSX, url, "Playlist Videos", videos, progress); err != nil {
					return "", err
				}
				return fmt.Sprintf("Exported %d videos to %s\n", len(videos), path), nil
			},
		},
		{
			Name:        "Mix playlists from spreadsheet",
			Summary:     "Mix of every video in a spreadsheet to " + cfg.MixFile,
			Prompt:      "Path to Excel file containing video IDs:",
			Placeholder: "videos.xlsx",
			Required:    true,
			Run: func(ctx context.Context, input string, progress chan<- tasks.ProgressUpdate) (string, error) {
				ids, err := formatter.ReadVideoIDs(input)
				if err != nil {
					return "", err
				}
				result, err := r.engine.MixPlaylists(ctx, ids, cfg.MixMaxResults, progress)
				if err != nil {
					return "", err
				}
				var b strings.Builder
				writeMixBatch(&b, result)
				if len(result.Entries) == 0 {
					return b.String(), nil
				}
				path := formatter.EnsureExt("", cfg.MixFile)
				if err := r.engine.ExportMixes(path, models.ExportMixBatch, input, result.Entries, progress); err != nil {
					return "", err
				}
				fmt.Fprintf(&b, "Mix playlists data exported successfully to: %s\n", path)
				return b.String(), nil
			},
		},
		{
			Name:        "Add to playlist",
			Summary:     fmt.Sprintf("Add spreadsheet videos to %q (needs 'ytxl auth login')", r.config.Playlist.Title),
			Prompt:      "Path to Excel file containing video IDs:",
			Placeholder: cfg.MixFile,
			Run: func(ctx context.Context, input string, progress chan<- tasks.ProgressUpdate) (string, error) {
				ids, err := formatter.ReadVideoIDs(models.Or(input, cfg.MixFile))
				if err != nil {
					return "", err
				}
				svc, err := r.savedTokenService(ctx)
				if err != nil {
					return "", err
				}
				result, err := tasks.NewEngine(svc).AddToPlaylist(ctx, ids, tasks.PlaylistOpts{
					Title:       r.config.Playlist.Title,
					Description: r.config.Playlist.Description,
					Privacy:     r.config.Playlist.Privacy,
				}, progress)
				if result == nil {
					return "", err
				}
				var b strings.Builder
				writeAddResult(&b, result)
				return b.String(), err
			},
		},
	}
}
