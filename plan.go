package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ─── Types ───────────────────────────────────────────────────────────────────

// dirType is the naming template applied when deriving proposed names.
type dirType int

const (
	typeNone dirType = iota
	typeSeries
	typeChapter
)

func (t dirType) String() string {
	switch t {
	case typeSeries:
		return "Series"
	case typeChapter:
		return "Chapter"
	default:
		return "None"
	}
}

// parseDirType accepts the full word or its first letter, case-insensitive.
func parseDirType(s string) (dirType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "none":
		return typeNone, true
	case "s", "series":
		return typeSeries, true
	case "c", "chapter":
		return typeChapter, true
	}
	return typeNone, false
}

type action byte

const (
	actionRename action = 'R'
	actionIgnore action = 'I'
	actionDelete action = 'D'
)

// entry is one dirent in the plan. Its identity is its index in the plan;
// original never changes after the scan, proposed and act are edited in place.
type entry struct {
	original string
	proposed string
	act      action
}

// session holds the live rename plan for one directory. Entries and the
// counter are rebuilt wholesale on reload, bulk, and cd; single-entry edits
// mutate in place.
type session struct {
	basePath string
	baseName string
	dirType  dirType
	entries  []entry
	next     int // fallback counter for entries with no usable number
	ignore   []string
}

func newSession(path string, ignore []string) (*session, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", abs)
	}
	s := &session{
		basePath: abs,
		baseName: filepath.Base(abs),
		ignore:   ignore,
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// ─── Directory Scanning ──────────────────────────────────────────────────────

// scanDir lists the immediate entries of dir in lexicographic order, skipping
// names that match any of the ignore globs.
func scanDir(dir string, ignore []string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range dirents {
		if matchesAny(d.Name(), ignore) {
			continue
		}
		names = append(names, d.Name())
	}
	return names, nil
}

func matchesAny(name string, globs []string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, name); err == nil && ok {
			return true
		}
	}
	return false
}

// ─── Plan Building ───────────────────────────────────────────────────────────

// buildEntry derives the proposed name for one dirent. A number token is
// extracted from the original name with pattern; when that fails the running
// counter is used instead. The highest number consumed is returned so the
// caller can keep the counter strictly increasing across entries. Under
// typeNone the name is left alone but the counter still advances.
func buildEntry(original string, counter int, pattern string, t dirType, baseName string) (string, int) {
	ext := filepath.Ext(original)

	tok, ok := extractNumberToken(pattern, original)
	if !ok {
		// Parsing a bare positive integer cannot fail.
		tok, _ = parseNumberToken(fmt.Sprintf("%d", counter))
	}

	switch t {
	case typeSeries:
		return fmt.Sprintf("%s c%s%s", baseName, tok.padded(), ext), tok.highest()
	case typeChapter:
		return fmt.Sprintf("%s p%s%s", baseName, tok.padded(), ext), tok.highest()
	default:
		return original, tok.highest()
	}
}

// rebuild replaces the session's entries from a fresh scan, numbering with
// pattern. Every action resets to rename; prior edits are discarded.
func (s *session) rebuild(pattern string) error {
	names, err := scanDir(s.basePath, s.ignore)
	if err != nil {
		return err
	}
	entries := make([]entry, 0, len(names))
	next := 1
	for _, name := range names {
		proposed, highest := buildEntry(name, next, pattern, s.dirType, s.baseName)
		entries = append(entries, entry{original: name, proposed: proposed, act: actionRename})
		if highest > next {
			next = highest
		}
		next++
	}
	s.entries = entries
	s.next = next
	return nil
}
