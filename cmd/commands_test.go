package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytxl/internal/formatter"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/services"
	"github.com/desertthunder/ytxl/internal/shared"
	tu "github.com/desertthunder/ytxl/internal/testing"
	"golang.org/x/oauth2"
)

const watchURL = "https://www.youtube.com/watch?v=" + seedA

func writeSeeds(t *testing.T, ids ...string) string {
	t.Helper()

	videos := make([]models.VideoRecord, 0, len(ids))
	for _, id := range ids {
		videos = append(videos, tu.SampleVideo(id))
	}
	path := filepath.Join(t.TempDir(), "seeds.xlsx")
	if err := formatter.WriteVideoSheet(path, videos); err != nil {
		t.Fatalf("failed to write seed sheet: %v", err)
	}
	return path
}

func readIDs(t *testing.T, path string) []string {
	t.Helper()

	ids, err := formatter.ReadVideoIDs(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return ids
}

func TestVideoInfo(t *testing.T) {
	t.Run("prints details", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)

		if err := tr.run("video", "info", watchURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{"Video Information:", "Title: Video " + seedA, "Channel: Channel " + seedA, "Views: 1000", "Likes: 50", "Comments: 7", "Duration: PT4M13S"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("missing statistics render as N/A", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.Videos[seedA] = models.VideoRecord{ID: seedA}

		if err := tr.run("video", "info", watchURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{"Title: Unknown Title", "Channel: Unknown Channel", "Views: N/A"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("JSON output", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)

		if err := tr.run("video", "info", "--json", "--pretty=false", watchURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), `"video_id":"`+seedA+`"`) {
			t.Errorf("expected JSON output, got %s", tr.out.String())
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			want error
		}{
			{name: "missing URL", args: []string{"video", "info"}, want: shared.ErrMissingArgument},
			{name: "malformed URL", args: []string{"video", "info", "not a url"}, want: shared.ErrInvalidURL},
			{name: "unknown video", args: []string{"video", "info", watchURL}, want: shared.ErrVideoNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tr := newTestRunner(t, testOpts{})
				if err := tr.run(tt.args...); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}

func TestMix(t *testing.T) {
	t.Run("get prints entries and the mix URL", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedA, seedB)

		if err := tr.run("mix", "get", watchURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{
			"Mix Playlist Based on Video ID: " + seedA,
			"1. Song " + seedA,
			"   Channel: Artist " + seedB,
			"   URL: https://www.youtube.com/watch?v=" + seedB,
			"Playlist URL: https://www.youtube.com/watch?v=" + seedA + "&list=RD" + seedA,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("get honours --max", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedA, seedB, seedC)

		if err := tr.run("mix", "get", "--max", "2", watchURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(tr.out.String(), "3. ") {
			t.Errorf("expected two entries, got:\n%s", tr.out.String())
		}
	})

	t.Run("get exports with --output", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedA, seedB)
		output := filepath.Join(t.TempDir(), "mix")

		if err := tr.run("mix", "get", "--output", output, watchURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		ids := readIDs(t, output+".xlsx")
		if len(ids) != 2 || ids[0] != seedA || ids[1] != seedB {
			t.Errorf("unexpected exported ids %v", ids)
		}
	})

	t.Run("get with empty mix is an error", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})

		if err := tr.run("mix", "get", watchURL); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("batch skips failed seeds", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedB, seedC)
		tr.svc.ListErrs["RD"+seedB] = errors.New("quota exceeded")
		tr.svc.PlaylistItems["RD"+seedC] = tu.SampleItems(seedA)

		input := writeSeeds(t, seedA, seedB, seedC)
		output := filepath.Join(t.TempDir(), "mixes.xlsx")

		if err := tr.run("mix", "batch", "--output", output, input); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{
			"Found 3 videos in the Excel file.",
			"Error getting mix playlist for video ID " + seedB + ": quota exceeded",
			"Successfully fetched 3 videos across all mix playlists (2/3 seeds).",
			"Mix playlists data exported successfully to: " + output,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}

		ids := readIDs(t, output)
		if want := []string{seedB, seedC, seedA}; strings.Join(ids, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, ids)
		}
	})

	t.Run("batch warns about empty mixes", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedB)

		input := writeSeeds(t, seedA, seedC)
		output := filepath.Join(t.TempDir(), "mixes.xlsx")

		if err := tr.run("mix", "batch", "--output", output, input); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{
			"Warning: Could not retrieve mix playlist for video ID: " + seedC,
			"Successfully fetched 1 videos across all mix playlists (1/2 seeds).",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("batch with no video ids", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		path := filepath.Join(t.TempDir(), "mixes.xlsx")
		if err := formatter.WriteMixSheet(path, nil); err != nil {
			t.Fatalf("failed to write sheet: %v", err)
		}
		if err := tr.run("mix", "batch", path); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("batch with missing file", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})

		if err := tr.run("mix", "batch", filepath.Join(t.TempDir(), "nope.xlsx")); !errors.Is(err, shared.ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
	})
}

func TestPlaylist(t *testing.T) {
	const playlistURL = "https://www.youtube.com/playlist?list=PLtest"

	t.Run("export writes the requested format", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["PLtest"] = tu.SampleItems(seedA, seedB)
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)
		tr.svc.Videos[seedB] = tu.SampleVideo(seedB)
		output := filepath.Join(t.TempDir(), "videos")

		if err := tr.run("playlist", "export", "--format", "csv", "--output", output, playlistURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(tr.out.String(), "Found 2 videos in the playlist.\nFetching detailed statistics for each video...\n") {
			t.Errorf("expected video count, got:\n%s", tr.out.String())
		}
		content := tu.MustReadFile(t, output+".csv")
		if !strings.HasPrefix(content, "Video ID,Title") || !strings.Contains(content, seedB) {
			t.Errorf("unexpected CSV content:\n%s", content)
		}
	})

	t.Run("export counts playlist items before fetching statistics", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["PLtest"] = tu.SampleItems(seedA, seedB, seedC)
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)
		output := filepath.Join(t.TempDir(), "videos.xlsx")

		if err := tr.run("playlist", "export", "--output", output, playlistURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		found := strings.Index(out, "Found 3 videos in the playlist.")
		fetching := strings.Index(out, "Fetching detailed statistics for each video...")
		if found < 0 || fetching < found {
			t.Errorf("expected item count before statistics line, got:\n%s", out)
		}
		if ids := readIDs(t, output); len(ids) != 1 || ids[0] != seedA {
			t.Errorf("expected only the video with details, got %v", ids)
		}
	})

	t.Run("export defaults to xlsx", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.PlaylistItems["PLtest"] = tu.SampleItems(seedA)
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)
		output := filepath.Join(t.TempDir(), "videos.xlsx")

		if err := tr.run("playlist", "export", "--output", output, playlistURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ids := readIDs(t, output); len(ids) != 1 || ids[0] != seedA {
			t.Errorf("unexpected ids %v", ids)
		}
	})

	t.Run("export rejects unknown formats", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})

		if err := tr.run("playlist", "export", "--format", "pdf", playlistURL); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("export of an empty playlist", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})

		if err := tr.run("playlist", "export", playlistURL); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("add creates the playlist and continues past failures", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.AddErrs[seedB] = errors.New("video unavailable")
		input := writeSeeds(t, seedA, seedB, seedC)

		if err := tr.run("playlist", "add", input); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tr.svc.Created) != 1 || tr.svc.Created[0].Title != "music video" || tr.svc.Created[0].Privacy != "private" {
			t.Fatalf("expected private 'music video' playlist to be created, got %+v", tr.svc.Created)
		}
		if added := tr.svc.Added["PLcreated1"]; strings.Join(added, ",") != seedA+","+seedC {
			t.Errorf("unexpected added videos %v", added)
		}

		out := tr.out.String()
		for _, want := range []string{
			`Created playlist "music video" (ID: PLcreated1)`,
			"Added video " + seedA + " to playlist",
			"Error adding video " + seedB + ": video unavailable",
			"✓ Added 2 of 3 videos",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("add reuses an existing playlist by exact title", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.svc.Playlists = []models.PlaylistRecord{
			{ID: "PLother", Title: "Music Video"},
			{ID: "PLfavs", Title: "favourites"},
		}
		input := writeSeeds(t, seedA)

		if err := tr.run("playlist", "add", "--title", "favourites", input); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tr.svc.Created) != 0 {
			t.Errorf("expected no playlist to be created, got %+v", tr.svc.Created)
		}
		if added := tr.svc.Added["PLfavs"]; len(added) != 1 {
			t.Errorf("expected video added to PLfavs, got %v", tr.svc.Added)
		}
	})

	t.Run("add fails when authorization fails", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.authorize = func(ctx context.Context) (services.Service, error) {
			return nil, shared.ErrMissingCredentials
		}

		if err := tr.run("playlist", "add", writeSeeds(t, seedA)); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestHistory(t *testing.T) {
	t.Run("without a database", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})

		for _, args := range [][]string{{"history", "exports"}, {"history", "videos"}} {
			if err := tr.run(args...); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("%v: expected ErrServiceUnavailable, got %v", args, err)
			}
		}
	})

	t.Run("records lookups and exports", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{db: setupTestDB(t)})
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedB)
		output := filepath.Join(t.TempDir(), "mix.xlsx")

		if err := tr.run("video", "info", watchURL); err != nil {
			t.Fatalf("video info: %v", err)
		}
		if err := tr.run("mix", "get", "--output", output, watchURL); err != nil {
			t.Fatalf("mix get: %v", err)
		}

		tr.out.Reset()
		if err := tr.run("history", "videos"); err != nil {
			t.Fatalf("history videos: %v", err)
		}
		if !strings.Contains(tr.out.String(), "Video ID: "+seedA+" | Views: 1000") {
			t.Errorf("expected cached video, got:\n%s", tr.out.String())
		}

		tr.out.Reset()
		if err := tr.run("history", "exports", "--kind", "mix"); err != nil {
			t.Fatalf("history exports: %v", err)
		}
		out := tr.out.String()
		if !strings.Contains(out, output+" [mix] 1 rows") || !strings.Contains(out, "Source: "+seedA) {
			t.Errorf("expected recorded export, got:\n%s", out)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{db: setupTestDB(t)})

		if err := tr.run("history", "exports"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "No exports recorded.") {
			t.Errorf("unexpected output %q", tr.out.String())
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := tr.run("setup", "config", "--config", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)

		if err := tr.run("setup", "config", "--config", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for existing file, got %v", err)
		}
		if err := tr.run("setup", "config", "--config", path, "--force"); err != nil {
			t.Errorf("expected --force to overwrite, got %v", err)
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load written config: %v", err)
		}
		if config.Playlist.Title != "music video" {
			t.Errorf("expected default playlist title, got %q", config.Playlist.Title)
		}
	})

	t.Run("database", func(t *testing.T) {
		dir := t.TempDir()
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(dir, "history.db")
		configPath := filepath.Join(dir, "config.toml")
		if err := shared.SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		tr := newTestRunner(t, testOpts{})
		if err := tr.run("setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, config.Database.Path)
		if !strings.Contains(tr.out.String(), "✓ Applied 1 migrations") {
			t.Errorf("unexpected output %q", tr.out.String())
		}

		tr.out.Reset()
		if err := tr.run("setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected rerun to succeed, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "✓ Applied 0 migrations") {
			t.Errorf("expected no pending migrations, got %q", tr.out.String())
		}

		if err := tr.run("setup", "database", "--config", configPath, "--rollback"); err != nil {
			t.Fatalf("expected rollback to succeed, got %v", err)
		}
	})
}

func TestAuthStatus(t *testing.T) {
	t.Run("without token", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})

		if err := tr.run("auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "✗ Not authenticated") {
			t.Errorf("unexpected output %q", tr.out.String())
		}
	})

	t.Run("with token", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}
		if err := shared.SaveToken(tr.config.YouTube.TokenPath, token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		if err := tr.run("auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := tr.out.String()
		if !strings.Contains(out, "✓ Token found") || !strings.Contains(out, "Refresh token: present") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("login without client secrets", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{})
		tr.config.YouTube.ClientSecretsPath = filepath.Join(t.TempDir(), "missing.json")

		if err := tr.run("auth", "login"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
