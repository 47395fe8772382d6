package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/desertthunder/ytxl/internal/testing"
)

func TestMenu(t *testing.T) {
	t.Run("prompts and options", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: "\n9\n"})

		if err := tr.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{
			"Enter YouTube URL (or press Enter to skip for option 4): ",
			"\nOptions:\n1. Get video information\n2. Get mix playlist videos\n3. Export playlist videos to Excel\n4. Get mix playlists for videos in Excel file\n",
			"Enter your choice (1, 2, 3, or 4): ",
			"Invalid choice. Please enter 1, 2, 3, or 4.",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("options 1-3 require a URL", func(t *testing.T) {
		for _, choice := range []string{"1", "2", "3"} {
			tr := newTestRunner(t, testOpts{input: "\n" + choice + "\n"})

			if err := tr.run("menu"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(tr.out.String(), "Error: URL is required for options 1-3.") {
				t.Errorf("choice %s: expected URL error, got:\n%s", choice, tr.out.String())
			}
			if len(tr.svc.Calls) != 0 {
				t.Errorf("choice %s: expected no API calls, got %v", choice, tr.svc.Calls)
			}
		}
	})

	t.Run("video information", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: "https://youtu.be/" + seedA + "\n1\n"})
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "Title: Video "+seedA) {
			t.Errorf("expected video details, got:\n%s", tr.out.String())
		}
	})

	t.Run("operation errors are printed", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: watchURL + "\n1\n"})
		tr.svc.Err = errors.New("backend down")

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected errors to be printed, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "Error: backend down") {
			t.Errorf("expected printed error, got:\n%s", tr.out.String())
		}
	})

	t.Run("mix playlist", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: watchURL + "\n2\n"})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedB)

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		if !strings.Contains(out, "Fetching mix playlist videos...") || !strings.Contains(out, "1. Song "+seedB) {
			t.Errorf("expected mix listing, got:\n%s", out)
		}
	})

	t.Run("mix playlist with an unusable URL", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: "https://example.com\n2\n"})

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "Error: Could not extract video ID from the provided URL.") {
			t.Errorf("unexpected output:\n%s", tr.out.String())
		}
	})

	t.Run("empty mix playlist", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: watchURL + "\n2\n"})

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "Error: Could not retrieve mix playlist or playlist is empty.") {
			t.Errorf("unexpected output:\n%s", tr.out.String())
		}
	})

	t.Run("playlist export appends .xlsx", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "export")
		tr := newTestRunner(t, testOpts{input: "https://www.youtube.com/playlist?list=PLtest\n3\n" + output + "\n"})
		tr.svc.PlaylistItems["PLtest"] = tu.SampleItems(seedA)
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{
			"Fetching videos from playlist ID: PLtest",
			"Found 1 videos in the playlist.",
			"Enter filename for Excel export (default: youtube_playlist_data.xlsx): ",
			"Data exported successfully to: " + output + ".xlsx",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
		if ids := readIDs(t, output+".xlsx"); len(ids) != 1 || ids[0] != seedA {
			t.Errorf("unexpected ids %v", ids)
		}
	})

	t.Run("mix playlists from a spreadsheet", func(t *testing.T) {
		input := writeSeeds(t, seedA, seedB)
		output := filepath.Join(t.TempDir(), "mixes.xlsx")
		tr := newTestRunner(t, testOpts{input: "\n4\n" + input + "\nnot a number\n" + output + "\n"})
		tr.svc.PlaylistItems["RD"+seedA] = tu.SampleItems(seedC)
		tr.svc.PlaylistItems["RD"+seedB] = tu.SampleItems(seedA, seedC)

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		for _, want := range []string{
			"Enter path to Excel file containing video IDs: ",
			"Found 2 videos in the Excel file.",
			"Enter maximum number of videos per mix playlist (default: 10): ",
			"Fetching mix playlists for 2 videos...",
			"Successfully fetched 3 videos across all mix playlists (2/2 seeds).",
			"Mix playlists data exported successfully to: " + output,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
		if ids := readIDs(t, output); strings.Join(ids, ",") != seedC+","+seedA+","+seedC {
			t.Errorf("unexpected ids %v", ids)
		}
	})

	t.Run("mix playlists from a missing spreadsheet", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: "\n4\nmissing.xlsx\n"})

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tr.out.String(), "Error: File 'missing.xlsx' not found.") {
			t.Errorf("unexpected output:\n%s", tr.out.String())
		}
	})

	t.Run("runs once without --repeat", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: "\n9\n\n9\n"})

		if err := tr.run("menu"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n := strings.Count(tr.out.String(), "Options:"); n != 1 {
			t.Errorf("expected one menu, got %d", n)
		}
	})

	t.Run("--repeat loops until q", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: watchURL + "\n1\n\n9\n\nq\n\n1\n"})
		tr.svc.Videos[seedA] = tu.SampleVideo(seedA)

		if err := tr.run("menu", "--repeat"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := tr.out.String()
		if n := strings.Count(out, "Options:"); n != 3 {
			t.Errorf("expected three menus, got %d:\n%s", n, out)
		}
		if !strings.Contains(out, "q. Quit") {
			t.Error("expected quit option to be listed")
		}
		if strings.Contains(out, "URL is required") {
			t.Error("expected input after q to be ignored")
		}
	})

	t.Run("--repeat stops at end of input", func(t *testing.T) {
		tr := newTestRunner(t, testOpts{input: "\n9\n"})

		if err := tr.run("menu", "--repeat"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n := strings.Count(tr.out.String(), "Options:"); n != 2 {
			t.Errorf("expected the second menu to end on empty input, got %d menus", n)
		}
	})
}

func TestParseMax(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 10},
		{"25", 25},
		{"abc", 10},
		{"0", 10},
		{"-3", 10},
	}

	for _, tt := range tests {
		if got := parseMax(tt.in, 10); got != tt.want {
			t.Errorf("parseMax(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
