package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/ytxl/internal/extract"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/xuri/excelize/v2"
)

const (
	// VideoIDColumn is the header every importer looks up.
	VideoIDColumn = "Video ID"
	xlsxExt       = ".xlsx"
)

var (
	// VideoColumns is the header row of a playlist export.
	VideoColumns = []string{
		VideoIDColumn, "Title", "Channel ID", "Channel",
		"View Count", "Like Count", "Comment Count", "Published Date", "Video URL",
	}

	// MixColumns is the header row of a mix playlist export.
	MixColumns = []string{"Source Video ID", VideoIDColumn, "Title", "Channel", "Video URL"}
)

// WriteVideoSheet writes videos as a single-sheet workbook at path, one row per video.
//
// Missing counts are written as "N/A".
func WriteVideoSheet(path string, videos []models.VideoRecord) error {
	rows := make([][]any, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []any{
			v.ID,
			models.Or(v.Title, models.Unknown),
			models.Or(v.ChannelID, models.Unknown),
			models.Or(v.ChannelTitle, models.Unknown),
			countCell(v.ViewCount),
			countCell(v.LikeCount),
			countCell(v.CommentCount),
			models.Or(v.PublishedAt, models.Unknown),
			extract.WatchURL(v.ID),
		})
	}
	return writeSheet(path, VideoColumns, rows)
}

// WriteMixSheet writes mix playlist entries as a single-sheet workbook at path.
func WriteMixSheet(path string, entries []models.MixPlaylistEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.SourceVideoID, e.VideoID, e.Title, e.Channel, extract.WatchURL(e.VideoID)})
	}
	return writeSheet(path, MixColumns, rows)
}

// ReadVideoIDs returns the non-blank values of the "Video ID" column of the first sheet, in row order.
func ReadVideoIDs(path string) ([]string, error) {
	if err := shared.VerifyFile(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open spreadsheet '%s': %v", shared.ErrInvalidInput, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read spreadsheet '%s': %v", shared.ErrInvalidInput, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: '%s' in empty spreadsheet '%s'", shared.ErrMissingColumn, VideoIDColumn, path)
	}

	col := -1
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == VideoIDColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: '%s' not found in '%s'", shared.ErrMissingColumn, VideoIDColumn, path)
	}

	ids := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		if id := strings.TrimSpace(row[col]); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// EnsureExt returns fallback when name is blank and appends ".xlsx" when the name lacks it.
func EnsureExt(name, fallback string) string {
	return WithExt(name, fallback, xlsxExt)
}

// WithExt returns fallback when name is blank and appends ext when the name lacks it (case-insensitively).
func WithExt(name, fallback, ext string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name
}

func countCell(n *uint64) any {
	if n == nil {
		return models.NotAvailable
	}
	return *n
}

func writeSheet(path string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, style)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet '%s': %w", path, err)
	}
	return nil
}
