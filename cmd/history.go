package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryExports lists the spreadsheets and files written by earlier runs, newest first.
func (r *Runner) HistoryExports(ctx context.Context, cmd *cli.Command) error {
	if r.exports == nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, errNoHistory)
	}

	criteria := map[string]any{"limit": cmd.Int("limit")}
	if kind := cmd.String("kind"); kind != "" {
		criteria["kind"] = kind
	}

	jobs, err := r.exports.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type exportRow struct {
			ID        string `json:"id"`
			Kind      string `json:"kind"`
			Source    string `json:"source"`
			FilePath  string `json:"file_path"`
			RowCount  int    `json:"row_count"`
			CreatedAt string `json:"created_at"`
		}
		rows := make([]exportRow, 0, len(jobs))
		for _, j := range jobs {
			rows = append(rows, exportRow{
				ID: j.ID(), Kind: string(j.Kind()), Source: j.Source(), FilePath: j.FilePath(),
				RowCount: j.RowCount(), CreatedAt: j.CreatedAt().Format("2006-01-02 15:04:05"),
			})
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if len(jobs) == 0 {
		return r.writePlain("No exports recorded.\n")
	}

	r.writePlain("Found %d exports:\n\n", len(jobs))
	for i, j := range jobs {
		r.writePlain("%d. %s [%s] %d rows\n", i+1, j.FilePath(), j.Kind(), j.RowCount())
		r.writePlain("   Source: %s\n", j.Source())
		r.writePlain("   Written: %s\n", j.CreatedAt().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// HistoryVideos lists the videos cached from earlier lookups.
func (r *Runner) HistoryVideos(ctx context.Context, cmd *cli.Command) error {
	if r.videos == nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, errNoHistory)
	}

	criteria := map[string]any{"limit": cmd.Int("limit")}
	if channel := cmd.String("channel"); channel != "" {
		criteria["channel_id"] = channel
	}

	cached, err := r.videos.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		records := make([]models.VideoRecord, 0, len(cached))
		for _, v := range cached {
			records = append(records, v.Record())
		}
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	if len(cached) == 0 {
		return r.writePlain("No videos cached.\n")
	}

	r.writePlain("Found %d cached videos:\n\n", len(cached))
	for i, v := range cached {
		rec := v.Record()
		r.writePlain("%d. %s\n", i+1, models.Or(rec.Title, models.UnknownTitle))
		r.writePlain("   Channel: %s\n", models.Or(rec.ChannelTitle, models.UnknownChannel))
		r.writePlain("   Video ID: %s | Views: %s\n", rec.ID, models.FormatCount(rec.ViewCount))
	}
	return nil
}
