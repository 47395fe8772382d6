package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
)

const videoColumns = `id, sequence, video_id, title, channel_id, channel_title, published_at,
	view_count, like_count, comment_count, duration, created_at, updated_at, deleted_at`

// VideoRepository implements models.Repository[*models.PersistedVideo] for the video cache.
//
// Rows are unique per platform video id; [VideoRepository.Upsert] refreshes an existing row in place.
type VideoRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.PersistedVideo] = (*VideoRepository)(nil)

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new [models.PersistedVideo] with generated ID and sequence
func (r *VideoRepository) Create(video *models.PersistedVideo) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	video.SetID(shared.GenerateID())
	video.SetSequence(sequence)

	rec := video.Record()
	query := `
		INSERT INTO videos (id, sequence, video_id, title, channel_id, channel_title, published_at,
			view_count, like_count, comment_count, duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		video.ID(),
		sequence,
		rec.ID,
		rec.Title,
		rec.ChannelID,
		rec.ChannelTitle,
		rec.PublishedAt,
		nullCount(rec.ViewCount),
		nullCount(rec.LikeCount),
		nullCount(rec.CommentCount),
		rec.Duration,
		video.CreatedAt(),
		video.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Upsert stores record, refreshing the metadata (and reviving a soft-deleted row) when the video id is already cached.
func (r *VideoRepository) Upsert(record models.VideoRecord) (*models.PersistedVideo, error) {
	existing, err := r.getByVideoID(record.ID, true)
	if errors.Is(err, ErrNotFound) {
		video := models.NewPersistedVideo(0, record)
		if err := r.Create(video); err != nil {
			return nil, err
		}
		return video, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	query := `
		UPDATE videos
		SET title = ?, channel_id = ?, channel_title = ?, published_at = ?,
			view_count = ?, like_count = ?, comment_count = ?, duration = ?, updated_at = ?, deleted_at = NULL
		WHERE id = ?
	`

	_, err = r.db.Exec(query,
		record.Title,
		record.ChannelID,
		record.ChannelTitle,
		record.PublishedAt,
		nullCount(record.ViewCount),
		nullCount(record.LikeCount),
		nullCount(record.CommentCount),
		record.Duration,
		now,
		existing.ID(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	existing.SetRecord(record)
	existing.SetUpdatedAt(now)
	return existing, nil
}

// Get retrieves a video by row ID, excluding soft-deleted videos
func (r *VideoRepository) Get(id string) (*models.PersistedVideo, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ? AND deleted_at IS NULL`
	return scanVideo(r.db.QueryRow(query, id))
}

// GetByVideoID retrieves a cached video by its platform video id
func (r *VideoRepository) GetByVideoID(videoID string) (*models.PersistedVideo, error) {
	return r.getByVideoID(videoID, false)
}

func (r *VideoRepository) getByVideoID(videoID string, includeDeleted bool) (*models.PersistedVideo, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	return scanVideo(r.db.QueryRow(query, videoID))
}

// Delete soft-deletes a video by row ID
func (r *VideoRepository) Delete(id string) error {
	return softDelete(r.db, "videos", id)
}

// List retrieves cached videos in insertion order.
//
// Supported criteria: "channel_id" (string) and "limit" (int).
func (r *VideoRepository) List(criteria map[string]any) ([]*models.PersistedVideo, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE deleted_at IS NULL`
	args := []any{}

	if channelID, ok := criteria["channel_id"].(string); ok && channelID != "" {
		query += " AND channel_id = ?"
		args = append(args, channelID)
	}

	query += " ORDER BY sequence ASC"
	query, args = limitClause(query, args, criteria)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.PersistedVideo
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// scanner is satisfied by [sql.Row] and [sql.Rows]
type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(s scanner) (*models.PersistedVideo, error) {
	var (
		id        string
		sequence  int
		rec       models.VideoRecord
		views     sql.NullInt64
		likes     sql.NullInt64
		comments  sql.NullInt64
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &rec.ID, &rec.Title, &rec.ChannelID, &rec.ChannelTitle, &rec.PublishedAt,
		&views, &likes, &comments, &rec.Duration, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: video", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	rec.ViewCount = countPtr(views)
	rec.LikeCount = countPtr(likes)
	rec.CommentCount = countPtr(comments)

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}
	return models.RestorePersistedVideo(id, sequence, rec, createdAt, updatedAt, deleted), nil
}

func nullCount(n *uint64) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func countPtr(n sql.NullInt64) *uint64 {
	if !n.Valid || n.Int64 < 0 {
		return nil
	}
	return models.Uint64(uint64(n.Int64))
}
