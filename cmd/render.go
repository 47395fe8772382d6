package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/ytxl/internal/extract"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/tasks"
)

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("-", 50)
)

func writeVideoInfo(w io.Writer, v *models.VideoRecord) {
	fmt.Fprintln(w, "\nVideo Information:")
	fmt.Fprintf(w, "Title: %s\n", models.Or(v.Title, models.UnknownTitle))
	fmt.Fprintf(w, "Channel: %s\n", models.Or(v.ChannelTitle, models.UnknownChannel))
	fmt.Fprintf(w, "Published: %s\n", models.Or(v.PublishedAt, models.Unknown))
	fmt.Fprintf(w, "Views: %s\n", models.FormatCount(v.ViewCount))
	fmt.Fprintf(w, "Likes: %s\n", models.FormatCount(v.LikeCount))
	fmt.Fprintf(w, "Comments: %s\n", models.FormatCount(v.CommentCount))
	fmt.Fprintf(w, "Duration: %s\n", models.Or(v.Duration, models.NotAvailable))
}

func writeMix(w io.Writer, mix *tasks.MixResult) {
	fmt.Fprintf(w, "\nMix Playlist Based on Video ID: %s\n", mix.SourceVideoID)
	fmt.Fprintln(w, heavyRule)

	for i, e := range mix.Entries {
		fmt.Fprintf(w, "%d. %s\n", i+1, e.Title)
		fmt.Fprintf(w, "   Channel: %s\n", e.Channel)
		fmt.Fprintf(w, "   Video ID: %s\n", e.VideoID)
		fmt.Fprintf(w, "   URL: %s\n", extract.WatchURL(e.VideoID))
		fmt.Fprintln(w, lightRule)
	}

	fmt.Fprintf(w, "\nPlaylist URL: %s\n", mix.URL)
}

func writeMixBatch(w io.Writer, result *tasks.MixBatchResult) {
	for _, id := range result.Empty {
		fmt.Fprintf(w, "Warning: Could not retrieve mix playlist for video ID: %s\n", id)
	}
	for _, f := range result.Failed {
		fmt.Fprintf(w, "Error getting mix playlist for video ID %s: %v\n", f.VideoID, f.Err)
	}
	fmt.Fprintf(w, "Successfully fetched %d videos across all mix playlists (%d/%d seeds).\n",
		len(result.Entries), result.Succeeded, result.Seeds)
}

func writeAddResult(w io.Writer, result *tasks.AddResult) {
	verb := "Using"
	if result.Created {
		verb = "Created"
	}
	fmt.Fprintf(w, "%s playlist %q (ID: %s)\n", verb, result.Playlist.Title, result.Playlist.ID)

	for _, id := range result.Added {
		fmt.Fprintf(w, "Added video %s to playlist\n", id)
	}
	for _, f := range result.Failed {
		fmt.Fprintf(w, "Error adding video %s: %v\n", f.VideoID, f.Err)
	}
	fmt.Fprintf(w, "\n✓ Added %d of %d videos\n", len(result.Added), len(result.Added)+len(result.Failed))
}

// logProgress logs updates from the returned channel until stop is called.
func (r *Runner) logProgress() (progress chan tasks.ProgressUpdate, stop func()) {
	progress = make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for u := range progress {
			if u.Err != nil {
				r.logger.Warn(u.Message, "phase", u.Phase)
			} else {
				r.logger.Info(u.Message, "phase", u.Phase)
			}
		}
	}()

	return progress, func() {
		close(progress)
		<-done
	}
}
