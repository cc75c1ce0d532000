package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Session operations validate first and either fully apply or leave the
// session untouched, so each is testable without the interactive loop.

// ─── Index Parsing ───────────────────────────────────────────────────────────

var leadingIndexRegex = regexp.MustCompile(`^(-?\d+)`)

// parseIndex splits a leading integer off arg, validates it against the
// current entries, and returns the index plus the remaining text. An index
// pointing at an ignored slot is rejected the same way as an out-of-range one.
func (s *session) parseIndex(arg string) (int, string, error) {
	arg = strings.TrimSpace(arg)
	m := leadingIndexRegex.FindString(arg)
	if m == "" {
		return 0, arg, fmt.Errorf("expecting index")
	}
	index, err := strconv.Atoi(m)
	if err != nil {
		return 0, arg, fmt.Errorf("expecting index")
	}
	rest := strings.TrimSpace(strings.TrimPrefix(arg, m))

	if index < 0 || index >= len(s.entries) {
		return 0, rest, fmt.Errorf("index (%d) out of range [0, %d)", index, len(s.entries))
	}
	if s.entries[index].act == actionIgnore {
		return 0, rest, fmt.Errorf("index %d is ignored", index)
	}
	return index, rest, nil
}

// ─── Operations ──────────────────────────────────────────────────────────────

// reload re-scans the directory and rebuilds the plan with the default
// number grammar. All actions reset to rename.
func (s *session) reload() error {
	return s.rebuild(defaultNumberPattern)
}

// bulk rebuilds the plan extracting numbers with an operator-supplied
// pattern. The pattern must compile and capture exactly one group; entries
// the pattern does not match fall back to the sequential counter.
func (s *session) bulk(pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if err := validateNumberPattern(pattern); err != nil {
		return err
	}
	return s.rebuild(pattern)
}

// setType changes the naming template. The plan is not rebuilt; the operator
// reloads or bulks to regenerate names under the new type.
func (s *session) setType(arg string) error {
	t, ok := parseDirType(arg)
	if !ok {
		return fmt.Errorf("unknown type %q", strings.TrimSpace(arg))
	}
	s.dirType = t
	return nil
}

// changeDir moves the session to another directory: an absolute path, a path
// relative to the current directory, or a bare entry index referring to a
// subdirectory in the plan. An integer that is not a valid index is treated
// as a path, so a directory literally named "7" stays reachable. The type
// resets to None and the plan is rebuilt.
func (s *session) changeDir(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("expecting path or index")
	}

	path := expandHome(target)
	if index, err := strconv.Atoi(target); err == nil && index >= 0 && index < len(s.entries) {
		path = s.entries[index].original
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.basePath, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot cd to %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", abs)
	}

	old := *s
	s.basePath = abs
	s.baseName = filepath.Base(abs)
	s.dirType = typeNone
	if err := s.reload(); err != nil {
		*s = old
		return err
	}
	return nil
}

// edit sets one entry's proposed name and marks it for rename, clearing any
// pending delete.
func (s *session) edit(arg string) (int, error) {
	index, newName, err := s.parseIndex(arg)
	if err != nil {
		return 0, err
	}
	if newName == "" {
		return 0, fmt.Errorf("no new name specified")
	}
	s.entries[index].proposed = newName
	s.entries[index].act = actionRename
	return index, nil
}

// markIgnore excludes one entry from the commit. The slot stays in the plan
// so later indices keep their meaning.
func (s *session) markIgnore(arg string) (int, error) {
	index, _, err := s.parseIndex(arg)
	if err != nil {
		return 0, err
	}
	s.entries[index].act = actionIgnore
	return index, nil
}

// markDelete marks one entry for removal from disk at commit time.
func (s *session) markDelete(arg string) (int, error) {
	index, _, err := s.parseIndex(arg)
	if err != nil {
		return 0, err
	}
	s.entries[index].act = actionDelete
	return index, nil
}

// pendingCounts reports how many renames and deletes a commit would perform.
func (s *session) pendingCounts() (renames, deletes int) {
	for _, e := range s.entries {
		switch e.act {
		case actionRename:
			if e.proposed != e.original {
				renames++
			}
		case actionDelete:
			deletes++
		}
	}
	return renames, deletes
}
