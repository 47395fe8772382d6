// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytxl/internal/models"
)

// MockService is an in-memory test double for [services.Service].
//
// Err fails every call. ListErrs and AddErrs fail individual playlists and videos.
type MockService struct {
	mu sync.Mutex

	Videos        map[string]models.VideoRecord
	PlaylistItems map[string][]models.PlaylistItem
	Playlists     []models.PlaylistRecord

	Err       error
	ListErrs  map[string]error
	AddErrs   map[string]error
	CreateErr error

	Added   map[string][]string
	Created []models.PlaylistRecord
	Calls   []string
}

// NewMockService creates an empty [MockService].
func NewMockService() *MockService {
	return &MockService{
		Videos:        map[string]models.VideoRecord{},
		PlaylistItems: map[string][]models.PlaylistItem{},
		ListErrs:      map[string]error{},
		AddErrs:       map[string]error{},
		Added:         map[string][]string{},
	}
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockService) GetVideos(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetVideos")

	if m.Err != nil {
		return nil, m.Err
	}

	var out []models.VideoRecord
	for _, id := range ids {
		if v, ok := m.Videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MockService) ListPlaylistItems(ctx context.Context, playlistID string, limit int) ([]models.PlaylistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListPlaylistItems:" + playlistID)

	if m.Err != nil {
		return nil, m.Err
	}
	if err := m.ListErrs[playlistID]; err != nil {
		return nil, err
	}

	items := m.PlaylistItems[playlistID]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MockService) ListMyPlaylists(ctx context.Context) ([]models.PlaylistRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListMyPlaylists")

	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.PlaylistRecord(nil), m.Playlists...), nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, title, description, privacy string) (*models.PlaylistRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreatePlaylist")

	if m.Err != nil {
		return nil, m.Err
	}
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	p := models.PlaylistRecord{
		ID:          fmt.Sprintf("PLcreated%d", len(m.Created)+1),
		Title:       title,
		Description: description,
		Privacy:     privacy,
	}
	m.Created = append(m.Created, p)
	m.Playlists = append(m.Playlists, p)
	return &p, nil
}

func (m *MockService) AddPlaylistItem(ctx context.Context, playlistID, videoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("AddPlaylistItem:" + videoID)

	if m.Err != nil {
		return m.Err
	}
	if err := m.AddErrs[videoID]; err != nil {
		return err
	}
	m.Added[playlistID] = append(m.Added[playlistID], videoID)
	return nil
}

// SampleVideo returns a fully populated [models.VideoRecord] for id.
func SampleVideo(id string) models.VideoRecord {
	return models.VideoRecord{
		ID:           id,
		Title:        "Video " + id,
		ChannelID:    "UC" + id,
		ChannelTitle: "Channel " + id,
		PublishedAt:  "2024-01-02T03:04:05Z",
		ViewCount:    models.Uint64(1000),
		LikeCount:    models.Uint64(50),
		CommentCount: models.Uint64(7),
		Duration:     "PT4M13S",
	}
}

// SampleItems returns one playlist item per id, owned by "Artist <id>".
func SampleItems(ids ...string) []models.PlaylistItem {
	items := make([]models.PlaylistItem, 0, len(ids))
	for i, id := range ids {
		items = append(items, models.PlaylistItem{
			VideoID:           id,
			Title:             "Song " + id,
			ChannelTitle:      "YouTube",
			OwnerChannelTitle: "Artist " + id,
			Position:          int64(i),
		})
	}
	return items
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
