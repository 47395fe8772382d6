package tasks

import (
	"fmt"

	"github.com/desertthunder/ytxl/internal/extract"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
	Err     error  // Set when the step failed and was skipped
}

// Operation phase enumeration
type Phase int

const (
	FetchVideos Phase = iota
	FetchPlaylist
	FetchMix
	FindPlaylist
	CreatePlaylist
	AddVideos
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case FetchVideos:
		return "fetch_videos"
	case FetchPlaylist:
		return "fetch_playlist"
	case FetchMix:
		return "fetch_mix"
	case FindPlaylist:
		return "find_playlist"
	case CreatePlaylist:
		return "create_playlist"
	case AddVideos:
		return "add_videos"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func fetchPlaylistUpdate(playlistID string) ProgressUpdate {
	kind := "playlist"
	if extract.IsMixPlaylist(playlistID) {
		kind = "mix playlist"
	}
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Fetching %s items (%s)...", kind, playlistID),
	}
}

func fetchVideosUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchVideos,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Fetching details for %d videos...", count),
	}
}

func fetchMixUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMix,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Getting mix playlist for video ID: %s", step, total, videoID),
	}
}

func mixFailedUpdate(step, total int, videoID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMix,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, videoID, err),
		Err:     err,
	}
}

func mixEmptyUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMix,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Warning: Could not retrieve mix playlist for video ID: %s", step, total, videoID),
		Err:     fmt.Errorf("%w: empty mix for %s", shared.ErrPlaylistNotFound, videoID),
	}
}

func findPlaylistUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FindPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking for playlist %q...", title),
	}
}

func playlistReadyUpdate(pl *models.PlaylistRecord, created bool) ProgressUpdate {
	phase, verb := FindPlaylist, "Found"
	if created {
		phase, verb = CreatePlaylist, "Created"
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("%s playlist: %s (ID: %s)", verb, pl.Title, pl.ID),
		Data:    pl,
	}
}

func addVideoUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ Added video %s", step, total, videoID),
	}
}

func addFailedUpdate(step, total int, videoID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ Error adding video %s: %v", step, total, videoID, err),
		Err:     err,
	}
}

func exportWrittenUpdate(path string, rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote %d rows to %s", rows, path),
	}
}
