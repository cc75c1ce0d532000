package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Numbers already in the names are not preserved: pages renumber purely
// by lexicographic position.
func TestRenameChapterDirIgnoresExistingNumbers(t *testing.T) {
	dir := chapterDir(t, "X", "page_10.jpg", "page_2.jpg")
	scanner := bufio.NewScanner(strings.NewReader(""))

	if err := renameChapterDir(dir, false, newDefaultConfig(), scanner); err != nil {
		t.Fatal(err)
	}

	// page_10.jpg sorts before page_2.jpg, so it becomes page 1.
	for _, f := range []string{"X p001.jpg", "X p002.jpg"} {
		if !exists(t, filepath.Join(dir, f)) {
			t.Errorf("%s missing after rename", f)
		}
	}
	if exists(t, filepath.Join(dir, "page_10.jpg")) {
		t.Error("page_10.jpg still present after rename")
	}
}

func TestRenameChapterDirInteractive(t *testing.T) {
	tests := []struct {
		name     string
		response string
		renamed  bool
	}{
		{"confirm", "y\n", true},
		{"decline", "n\n", false},
		{"unknown response", "maybe\n", false},
		{"no response", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chapterDir(t, "X", "a.jpg")
			scanner := bufio.NewScanner(strings.NewReader(tt.response))

			if err := renameChapterDir(dir, true, newDefaultConfig(), scanner); err != nil {
				t.Fatal(err)
			}
			if got := exists(t, filepath.Join(dir, "X p001.jpg")); got != tt.renamed {
				t.Errorf("renamed = %v, want %v", got, tt.renamed)
			}
		})
	}
}

func TestRenameChapterDirRejectsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "x")
	scanner := bufio.NewScanner(strings.NewReader(""))

	if err := renameChapterDir(path, false, newDefaultConfig(), scanner); err == nil {
		t.Error("renameChapterDir on a regular file should fail")
	}
}

func TestRenameChapterDirsExitCode(t *testing.T) {
	good := chapterDir(t, "X", "a.jpg")
	if code := renameChapterDirs([]string{good}, false, newDefaultConfig()); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	missing := filepath.Join(t.TempDir(), "missing")
	if code := renameChapterDirs([]string{missing}, false, newDefaultConfig()); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Berserk v001 c001.cbz"), "x")
	writeFile(t, filepath.Join(dir, "Berserk v001 c001 p001.jpg"), "x")
	writeFile(t, filepath.Join(dir, "random.jpg"), "x")
	writeFile(t, filepath.Join(dir, ".hidden"), "x") // skipped by the default ignore glob
	if err := os.Mkdir(filepath.Join(dir, "Berserk v001 c002"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "loose scans"), 0755); err != nil {
		t.Fatal(err)
	}

	bad, err := checkDir(dir, newDefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if bad != 2 {
		t.Errorf("bad = %d, want 2 (random.jpg, loose scans)", bad)
	}
}

func TestCheckDirsExitCode(t *testing.T) {
	clean := t.TempDir()
	writeFile(t, filepath.Join(clean, "Berserk v001 c001.cbz"), "x")
	if code := checkDirs([]string{clean}, newDefaultConfig()); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	dirty := t.TempDir()
	writeFile(t, filepath.Join(dirty, "random.jpg"), "x")
	if code := checkDirs([]string{dirty}, newDefaultConfig()); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
