package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindFileCaseInsensitive(t *testing.T) {
	tmpDir := t.TempDir()

	testFiles := []string{
		"Player.ferris",
		"ENEMY.FERRIS",
		"config.txt",
	}

	for _, filename := range testFiles {
		path := filepath.Join(tmpDir, filename)
		if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	tests := []struct {
		name          string
		searchName    string
		shouldFind    bool
		expectedMatch string
	}{
		{
			name:          "exact match",
			searchName:    "Player.ferris",
			shouldFind:    true,
			expectedMatch: "Player.ferris",
		},
		{
			name:          "lowercase search for mixed case file",
			searchName:    "player.ferris",
			shouldFind:    true,
			expectedMatch: "Player.ferris",
		},
		{
			name:          "mixed case search for uppercase file",
			searchName:    "Enemy.ferris",
			shouldFind:    true,
			expectedMatch: "ENEMY.FERRIS",
		},
		{
			name:       "file not found",
			searchName: "nonexistent.ferris",
			shouldFind: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := FindFileCaseInsensitive(tmpDir, tt.searchName)

			if tt.shouldFind {
				if err != nil {
					t.Errorf("Expected to find file, but got error: %v", err)
					return
				}

				actualFilename := filepath.Base(path)
				if actualFilename != tt.expectedMatch {
					t.Errorf("Expected filename %s, got %s", tt.expectedMatch, actualFilename)
				}

				if _, err := os.Stat(path); err != nil {
					t.Errorf("Returned path does not exist: %s", path)
				}
			} else {
				if err == nil {
					t.Errorf("Expected error for non-existent file, but got path: %s", path)
				}
			}
		})
	}
}

func TestRealFSReadFileIgnoresCase(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "Movement.ferris"), []byte("fn _ready() {}"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	fsys := NewRealFS(tmpDir)
	data, err := fsys.ReadFile("movement.ferris")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "fn _ready() {}" {
		t.Errorf("unexpected contents: %q", data)
	}
}

func TestListByExt(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"b.ferris", "a.ferris", "notes.txt", "C.FERRIS"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	names, err := ListByExt(NewRealFS(tmpDir), ".", ".ferris")
	if err != nil {
		t.Fatalf("ListByExt failed: %v", err)
	}

	want := []string{"C.FERRIS", "a.ferris", "b.ferris"}
	if len(names) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(names), names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestDecodeSource(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{
			name: "plain utf-8",
			raw:  []byte("let x: i32 = 1;"),
			want: "let x: i32 = 1;",
		},
		{
			name: "utf-8 with BOM",
			raw:  append([]byte{0xEF, 0xBB, 0xBF}, []byte("let x: i32 = 1;")...),
			want: "let x: i32 = 1;",
		},
		{
			name: "utf-16 LE with BOM",
			raw:  []byte{0xFF, 0xFE, 'l', 0, 'e', 0, 't', 0},
			want: "let",
		},
		{
			name: "utf-16 BE with BOM",
			raw:  []byte{0xFE, 0xFF, 0, 'f', 0, 'n'},
			want: "fn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSource(tt.raw)
			if err != nil {
				t.Fatalf("DecodeSource failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeSource = %q, want %q", got, tt.want)
			}
		})
	}
}
