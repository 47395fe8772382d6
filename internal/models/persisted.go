package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	_ Model = (*PersistedVideo)(nil)
	_ Model = (*ExportJob)(nil)
)

var errValidation = errors.New("validation failed")

// PersistedVideo is a [VideoRecord] cached in the local database.
type PersistedVideo struct {
	id        string
	sequence  int
	record    VideoRecord
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedVideo wraps record for storage. The ID is assigned by the repository.
func NewPersistedVideo(sequence int, record VideoRecord) *PersistedVideo {
	now := time.Now()
	return &PersistedVideo{sequence: sequence, record: record, createdAt: now, updatedAt: now}
}

// RestorePersistedVideo rebuilds a PersistedVideo from stored columns.
func RestorePersistedVideo(id string, sequence int, record VideoRecord, createdAt, updatedAt time.Time, deletedAt *time.Time) *PersistedVideo {
	return &PersistedVideo{
		id:        id,
		sequence:  sequence,
		record:    record,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (v *PersistedVideo) ID() string               { return v.id }
func (v *PersistedVideo) Sequence() int            { return v.sequence }
func (v *PersistedVideo) Record() VideoRecord      { return v.record }
func (v *PersistedVideo) VideoID() string          { return v.record.ID }
func (v *PersistedVideo) CreatedAt() time.Time     { return v.createdAt }
func (v *PersistedVideo) UpdatedAt() time.Time     { return v.updatedAt }
func (v *PersistedVideo) DeletedAt() *time.Time    { return v.deletedAt }
func (v *PersistedVideo) SetID(id string)          { v.id = id }
func (v *PersistedVideo) SetSequence(seq int)      { v.sequence = seq }
func (v *PersistedVideo) SetRecord(r VideoRecord)  { v.record = r }
func (v *PersistedVideo) SetUpdatedAt(t time.Time) { v.updatedAt = t }

// Validate requires a platform video id; every other field may be empty.
func (v *PersistedVideo) Validate() error {
	if v.record.ID == "" {
		return fmt.Errorf("%w: video id is required", errValidation)
	}
	return nil
}

// ExportKind identifies which operation produced a spreadsheet.
type ExportKind string

const (
	ExportPlaylist ExportKind = "playlist"
	ExportMix      ExportKind = "mix"
	ExportMixBatch ExportKind = "mix_batch"
)

// ExportJob records one spreadsheet written by the CLI.
type ExportJob struct {
	id        string
	sequence  int
	kind      ExportKind
	source    string
	filePath  string
	rowCount  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewExportJob describes a spreadsheet of rowCount rows written to filePath from source (a URL or input file).
func NewExportJob(kind ExportKind, source, filePath string, rowCount int) *ExportJob {
	now := time.Now()
	return &ExportJob{
		kind:      kind,
		source:    source,
		filePath:  filePath,
		rowCount:  rowCount,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreExportJob rebuilds an ExportJob from stored columns.
func RestoreExportJob(id string, sequence int, kind ExportKind, source, filePath string, rowCount int, createdAt, updatedAt time.Time, deletedAt *time.Time) *ExportJob {
	return &ExportJob{
		id:        id,
		sequence:  sequence,
		kind:      kind,
		source:    source,
		filePath:  filePath,
		rowCount:  rowCount,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (e *ExportJob) ID() string            { return e.id }
func (e *ExportJob) Sequence() int         { return e.sequence }
func (e *ExportJob) Kind() ExportKind      { return e.kind }
func (e *ExportJob) Source() string        { return e.source }
func (e *ExportJob) FilePath() string      { return e.filePath }
func (e *ExportJob) RowCount() int         { return e.rowCount }
func (e *ExportJob) CreatedAt() time.Time  { return e.createdAt }
func (e *ExportJob) UpdatedAt() time.Time  { return e.updatedAt }
func (e *ExportJob) DeletedAt() *time.Time { return e.deletedAt }
func (e *ExportJob) SetID(id string)       { e.id = id }
func (e *ExportJob) SetSequence(seq int)   { e.sequence = seq }

func (e *ExportJob) Validate() error {
	switch e.kind {
	case ExportPlaylist, ExportMix, ExportMixBatch:
	default:
		return fmt.Errorf("%w: unknown export kind %q", errValidation, e.kind)
	}
	if e.filePath == "" {
		return fmt.Errorf("%w: file path is required", errValidation)
	}
	if e.rowCount < 0 {
		return fmt.Errorf("%w: row count cannot be negative", errValidation)
	}
	return nil
}
