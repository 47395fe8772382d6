package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path"
	"sync"

	"github.com/desertthunder/ytxl/internal/models"
)

// statisticsRecorder remembers which count fields each videos.list item carried.
//
// The generated client decodes counts into plain uint64 values, so a hidden like count and a zero like count
// look the same after decoding. The recorder reads the raw body first and leaves it intact for the client.
type statisticsRecorder struct {
	next http.RoundTripper

	mu   sync.Mutex
	seen map[string]statisticsFields
}

type statisticsFields struct {
	ViewCount    json.RawMessage `json:"viewCount"`
	LikeCount    json.RawMessage `json:"likeCount"`
	CommentCount json.RawMessage `json:"commentCount"`
}

type videoListBody struct {
	Items []struct {
		ID         string            `json:"id"`
		Statistics *statisticsFields `json:"statistics"`
	} `json:"items"`
}

func newStatisticsRecorder(next http.RoundTripper) *statisticsRecorder {
	if next == nil {
		next = http.DefaultTransport
	}
	return &statisticsRecorder{next: next, seen: map[string]statisticsFields{}}
}

func (s *statisticsRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.next.RoundTrip(req)
	if err != nil || !isVideoList(req, resp) {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var payload videoListBody
	if json.Unmarshal(body, &payload) != nil {
		return resp, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range payload.Items {
		if item.Statistics != nil {
			s.seen[item.ID] = *item.Statistics
		}
	}
	return resp, nil
}

func isVideoList(req *http.Request, resp *http.Response) bool {
	return req.Method == http.MethodGet &&
		path.Base(req.URL.Path) == "videos" &&
		resp.StatusCode == http.StatusOK &&
		resp.Header.Get("Content-Encoding") == ""
}

// dropMissing clears the counts of record that the response for its id left out.
func (s *statisticsRecorder) dropMissing(record *models.VideoRecord) {
	if s == nil {
		return
	}

	s.mu.Lock()
	fields, ok := s.seen[record.ID]
	s.mu.Unlock()
	if !ok {
		return
	}

	if !present(fields.ViewCount) {
		record.ViewCount = nil
	}
	if !present(fields.LikeCount) {
		record.LikeCount = nil
	}
	if !present(fields.CommentCount) {
		record.CommentCount = nil
	}
}

func (s *statisticsRecorder) forget(ids []string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.seen, id)
	}
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
