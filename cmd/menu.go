package main

import (
	"context"
	"strconv"

	"github.com/desertthunder/ytxl/internal/extract"
	"github.com/desertthunder/ytxl/internal/formatter"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	choiceVideo    = "1"
	choiceMix      = "2"
	choicePlaylist = "3"
	choiceMixBatch = "4"
	choiceQuit     = "q"
)

// Menu runs the interactive numbered menu.
//
// Operation errors are printed and the menu carries on; only input and output failures are returned.
// With --repeat the menu loops until the choice is empty or "q".
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	repeat := cmd.Bool("repeat")
	for {
		choice, err := r.menuOnce(ctx, repeat)
		if err != nil {
			return err
		}
		if !repeat || choice == "" || choice == choiceQuit {
			return nil
		}
		r.writePlain("\n")
	}
}

func (r *Runner) menuOnce(ctx context.Context, repeat bool) (string, error) {
	url, err := r.prompt("Enter YouTube URL (or press Enter to skip for option 4): ")
	if err != nil {
		return "", err
	}

	r.writePlain("\nOptions:\n")
	r.writePlain("1. Get video information\n")
	r.writePlain("2. Get mix playlist videos\n")
	r.writePlain("3. Export playlist videos to Excel\n")
	r.writePlain("4. Get mix playlists for videos in Excel file\n")
	if repeat {
		r.writePlain("q. Quit\n")
	}

	choice, err := r.prompt("Enter your choice (1, 2, 3, or 4): ")
	if err != nil {
		return "", err
	}

	switch choice {
	case choiceVideo, choiceMix, choicePlaylist:
		if url == "" {
			return choice, r.writePlain("Error: URL is required for options 1-3.\n")
		}
	case choiceMixBatch:
	default:
		if repeat && (choice == "" || choice == choiceQuit) {
			return choice, nil
		}
		return choice, r.writePlain("Invalid choice. Please enter 1, 2, 3, or 4.\n")
	}

	var opErr error
	switch choice {
	case choiceVideo:
		opErr = r.menuVideo(ctx, url)
	case choiceMix:
		opErr = r.menuMix(ctx, url)
	case choicePlaylist:
		opErr = r.menuPlaylist(ctx, url)
	case choiceMixBatch:
		opErr = r.menuMixBatch(ctx)
	}

	if opErr != nil {
		r.logger.Debug("menu operation failed", "choice", choice, "error", opErr)
		return choice, r.writePlain("Error: %v\n", opErr)
	}
	return choice, nil
}

func (r *Runner) menuVideo(ctx context.Context, url string) error {
	video, err := r.engine.VideoInfo(ctx, url)
	if err != nil {
		return err
	}
	writeVideoInfo(r.output, video)
	return nil
}

func (r *Runner) menuMix(ctx context.Context, url string) error {
	if _, ok := extract.VideoID(url); !ok {
		return plainError("Could not extract video ID from the provided URL.")
	}

	r.writePlain("\nFetching mix playlist videos...\n")
	mix, err := r.engine.MixPlaylist(ctx, url, r.config.Export.MixMaxResults)
	if err != nil {
		return err
	}
	if len(mix.Entries) == 0 {
		return plainError("Could not retrieve mix playlist or playlist is empty.")
	}

	writeMix(r.output, mix)
	return nil
}

func (r *Runner) menuPlaylist(ctx context.Context, url string) error {
	playlistID, ok := extract.PlaylistID(url)
	if !ok {
		return plainError("Could not extract playlist ID from the provided URL.")
	}

	r.writePlain("\nFetching videos from playlist ID: %s\n", playlistID)
	videos, err := r.fetchPlaylist(ctx, url, r.config.Export.PlaylistMaxResults)
	if err != nil {
		return err
	}

	name, err := r.prompt("Enter filename for Excel export (default: " + r.config.Export.PlaylistFile + "): ")
	if err != nil {
		return err
	}

	path := formatter.EnsureExt(name, r.config.Export.PlaylistFile)
	if err := r.engine.ExportVideos(path, formatter.FormatXLSX, url, "Playlist Videos", videos, nil); err != nil {
		return err
	}
	return r.writePlain("Data exported successfully to: %s\n", path)
}

func (r *Runner) menuMixBatch(ctx context.Context) error {
	input, err := r.prompt("Enter path to Excel file containing video IDs: ")
	if err != nil {
		return err
	}
	if err := shared.VerifyFile(input); err != nil {
		return plainError("File '" + input + "' not found.")
	}

	ids, err := r.readSeeds(input)
	if err != nil {
		return err
	}

	maxInput, err := r.prompt("Enter maximum number of videos per mix playlist (default: " + strconv.Itoa(r.config.Export.MixMaxResults) + "): ")
	if err != nil {
		return err
	}

	result, err := r.fetchMixBatch(ctx, ids, parseMax(maxInput, r.config.Export.MixMaxResults))
	if err != nil {
		return err
	}

	name, err := r.prompt("Enter filename for Excel export (default: " + r.config.Export.MixFile + "): ")
	if err != nil {
		return err
	}
	return r.exportMixBatch(input, formatter.EnsureExt(name, r.config.Export.MixFile), result)
}

// parseMax parses a result cap typed at a prompt; blank, malformed and non-positive input yield fallback.
func parseMax(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// plainError is an error whose message is printed after "Error: " as is.
type plainError string

func (e plainError) Error() string { return string(e) }
