package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// ─── Commit ──────────────────────────────────────────────────────────────────

// commitResult summarizes one commit pass. errs holds one error per entry
// that failed; earlier successes are not rolled back.
type commitResult struct {
	renamed int
	deleted int
	errs    []error
}

// commitEntries applies the plan to disk in index order. Renames whose
// proposed name equals the original and ignored entries are skipped. A
// failed entry is recorded and iteration continues with the next one.
func commitEntries(basePath string, entries []entry) commitResult {
	var res commitResult
	for i, e := range entries {
		switch e.act {
		case actionRename:
			if e.proposed == e.original {
				continue
			}
			from := filepath.Join(basePath, e.original)
			to := filepath.Join(basePath, e.proposed)
			if err := os.Rename(from, to); err != nil {
				res.errs = append(res.errs, fmt.Errorf("entry %d: rename %q: %w", i, e.original, err))
				continue
			}
			res.renamed++
		case actionDelete:
			if err := removePath(filepath.Join(basePath, e.original)); err != nil {
				res.errs = append(res.errs, fmt.Errorf("entry %d: delete %q: %w", i, e.original, err))
				continue
			}
			res.deleted++
		}
	}
	return res
}

// removePath unlinks a regular file or symlink, removes a directory
// recursively, and refuses anything else.
func removePath(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	switch {
	case info.Mode().IsRegular(), info.Mode()&os.ModeSymlink != 0:
		return os.Remove(path)
	case info.IsDir():
		return os.RemoveAll(path)
	default:
		return fmt.Errorf("%s is not a file, link, or dir", path)
	}
}
