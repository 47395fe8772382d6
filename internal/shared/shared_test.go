package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("loads variables without overriding", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		content := "YTXL_TEST_NEW=from-file\nYTXL_TEST_SET=from-file\n"
		if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		t.Setenv("YTXL_TEST_SET", "from-process")
		t.Setenv("YTXL_TEST_NEW", "")
		os.Unsetenv("YTXL_TEST_NEW")

		if err := LoadEnv(envPath); err != nil {
			t.Fatalf("failed to load env: %v", err)
		}
		defer os.Unsetenv("YTXL_TEST_NEW")

		if got := os.Getenv("YTXL_TEST_NEW"); got != "from-file" {
			t.Errorf("expected from-file, got %q", got)
		}
		if got := os.Getenv("YTXL_TEST_SET"); got != "from-process" {
			t.Errorf("expected existing value to win, got %q", got)
		}
	})
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}
	b, _ := GenerateState()

	if a == "" || a == b {
		t.Errorf("expected distinct non-empty states, got %q and %q", a, b)
	}
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ids.xlsx")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tc := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "existing file", path: file},
		{name: "missing file", path: filepath.Join(dir, "nope.xlsx"), wantErr: true},
		{name: "directory", path: dir, wantErr: true},
		{name: "empty path", path: "  ", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenStorage(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		token := &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
		}

		if err := SaveToken(path, token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("token file should exist: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}

		loaded, err := LoadToken(path)
		if err != nil {
			t.Fatalf("failed to load token: %v", err)
		}
		if loaded.RefreshToken != "refresh" {
			t.Errorf("expected refresh token to survive, got %q", loaded.RefreshToken)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadToken(filepath.Join(t.TempDir(), "token.json")); err == nil {
			t.Error("expected error for missing token")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
			t.Fatalf("failed to write token: %v", err)
		}
		if _, err := LoadToken(path); err == nil {
			t.Error("expected error for empty token")
		}
	})

	t.Run("nil token", func(t *testing.T) {
		if err := SaveToken(filepath.Join(t.TempDir(), "token.json"), nil); err == nil {
			t.Error("expected error for nil token")
		}
	})
}
