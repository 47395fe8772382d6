package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
)

const exportColumns = `id, sequence, kind, source, file_path, row_count, created_at, updated_at, deleted_at`

// ExportRepository implements models.Repository[*models.ExportJob] for the export log.
type ExportRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.ExportJob] = (*ExportRepository)(nil)

// NewExportRepository creates a new ExportRepository with the given database connection
func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create inserts a new [models.ExportJob] with generated ID and sequence
func (r *ExportRepository) Create(job *models.ExportJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "exports")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	job.SetID(shared.GenerateID())
	job.SetSequence(sequence)

	query := `
		INSERT INTO exports (id, sequence, kind, source, file_path, row_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		job.ID(),
		sequence,
		string(job.Kind()),
		job.Source(),
		job.FilePath(),
		job.RowCount(),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	return nil
}

// Get retrieves an export by ID, excluding soft-deleted exports
func (r *ExportRepository) Get(id string) (*models.ExportJob, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = ? AND deleted_at IS NULL`
	return scanExport(r.db.QueryRow(query, id))
}

// Delete soft-deletes an export by ID
func (r *ExportRepository) Delete(id string) error {
	return softDelete(r.db, "exports", id)
}

// List retrieves exports, most recent first.
//
// Supported criteria: "kind" (string or [models.ExportKind]) and "limit" (int).
func (r *ExportRepository) List(criteria map[string]any) ([]*models.ExportJob, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE deleted_at IS NULL`
	args := []any{}

	var kind string
	switch k := criteria["kind"].(type) {
	case string:
		kind = k
	case models.ExportKind:
		kind = string(k)
	}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY sequence DESC"
	query, args = limitClause(query, args, criteria)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	var jobs []*models.ExportJob
	for rows.Next() {
		job, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

func scanExport(s scanner) (*models.ExportJob, error) {
	var (
		id        string
		sequence  int
		kind      string
		source    string
		filePath  string
		rowCount  int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &kind, &source, &filePath, &rowCount, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: export", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan export: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}
	return models.RestoreExportJob(id, sequence, models.ExportKind(kind), source, filePath, rowCount, createdAt, updatedAt, deleted), nil
}
