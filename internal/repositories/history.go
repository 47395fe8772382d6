package repositories

import (
	"fmt"

	"github.com/desertthunder/ytxl/internal/models"
)

// VideoCacheAdapter implements tasks.VideoCacher using VideoRepository.
//
// Every fetch refreshes the cached row for the video id.
type VideoCacheAdapter struct {
	repo *VideoRepository
}

// NewVideoCacheAdapter creates a new VideoCacheAdapter with the given repository
func NewVideoCacheAdapter(repo *VideoRepository) *VideoCacheAdapter {
	return &VideoCacheAdapter{repo: repo}
}

// CacheVideo upserts record. Records without a video id are ignored.
func (a *VideoCacheAdapter) CacheVideo(record models.VideoRecord) error {
	if record.ID == "" {
		return nil
	}
	if _, err := a.repo.Upsert(record); err != nil {
		return fmt.Errorf("failed to cache video: %w", err)
	}
	return nil
}

// ExportLogAdapter implements tasks.ExportRecorder using ExportRepository.
type ExportLogAdapter struct {
	repo *ExportRepository
}

// NewExportLogAdapter creates a new ExportLogAdapter with the given repository
func NewExportLogAdapter(repo *ExportRepository) *ExportLogAdapter {
	return &ExportLogAdapter{repo: repo}
}

// RecordExport inserts an export log entry.
func (a *ExportLogAdapter) RecordExport(kind models.ExportKind, source, path string, rows int) error {
	if err := a.repo.Create(models.NewExportJob(kind, source, path, rows)); err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}
