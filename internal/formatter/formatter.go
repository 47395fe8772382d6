// package formatter writes video and mix playlist tables to spreadsheets (xlsx) and to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ytxl/internal/extract"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX     Format = "xlsx"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a --format flag value; blank means xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format '%s' (xlsx, csv, markdown, txt, json)", shared.ErrInvalidFlag, s)
	}
}

// Ext returns the file extension of f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatXLSX, "":
		return xlsxExt
	default:
		return "." + string(f)
	}
}

// WriteVideos writes videos to path in the given format. title heads Markdown and text output.
func WriteVideos(path string, format Format, title string, videos []models.VideoRecord) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatXLSX, "":
		return WriteVideoSheet(path, videos)
	case FormatCSV:
		data, err = VideosToCSV(videos)
	case FormatMarkdown:
		data = VideosToMarkdown(title, videos)
	case FormatText:
		data = VideosToText(title, videos)
	case FormatJSON:
		data, err = shared.MarshalJSON(videos, true)
	default:
		return fmt.Errorf("%w: unknown format '%s'", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}

// VideosToCSV renders videos with the same columns as [WriteVideoSheet].
func VideosToCSV(videos []models.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(VideoColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range videos {
		record := []string{
			v.ID,
			models.Or(v.Title, models.Unknown),
			models.Or(v.ChannelID, models.Unknown),
			models.Or(v.ChannelTitle, models.Unknown),
			models.FormatCount(v.ViewCount),
			models.FormatCount(v.LikeCount),
			models.FormatCount(v.CommentCount),
			models.Or(v.PublishedAt, models.Unknown),
			extract.WatchURL(v.ID),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// VideosToMarkdown renders videos as a numbered Markdown list of links.
func VideosToMarkdown(title string, videos []models.VideoRecord) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", models.Or(title, "Videos"))
	fmt.Fprintf(&buf, "**Videos**: %d\n\n", len(videos))

	buf.WriteString("## Videos\n\n")
	for i, v := range videos {
		fmt.Fprintf(&buf, "%d. [%s](%s) - %s (%s views)\n",
			i+1, models.Or(v.Title, models.Unknown), extract.WatchURL(v.ID),
			models.Or(v.ChannelTitle, models.Unknown), models.FormatCount(v.ViewCount))
	}

	return buf.Bytes()
}

// VideosToText renders videos as plain numbered lines.
func VideosToText(title string, videos []models.VideoRecord) []byte {
	var buf bytes.Buffer

	if title != "" {
		fmt.Fprintf(&buf, "Playlist: %s\n", title)
	}
	fmt.Fprintf(&buf, "Videos: %d\n\n", len(videos))

	for i, v := range videos {
		fmt.Fprintf(&buf, "%d. %s - %s (%s)\n",
			i+1, models.Or(v.ChannelTitle, models.Unknown), models.Or(v.Title, models.Unknown), extract.WatchURL(v.ID))
	}

	return buf.Bytes()
}
