package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ─── Batch Modes ─────────────────────────────────────────────────────────────

// renameChapterDirs implements --chapter: every file in each directory is
// renamed to "<dir> pNNN<ext>" in lexicographic order, ignoring any numbers
// already in the names. With interactive set, the plan is printed and the
// operator confirms each directory before anything moves.
func renameChapterDirs(paths []string, interactive bool, cfg config) int {
	scanner := bufio.NewScanner(os.Stdin)
	code := 0
	for _, path := range paths {
		if err := renameChapterDir(path, interactive, cfg, scanner); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			code = 1
		}
	}
	return code
}

func renameChapterDir(path string, interactive bool, cfg config, scanner *bufio.Scanner) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", abs)
	}

	s := &session{
		basePath: abs,
		baseName: filepath.Base(abs),
		dirType:  typeChapter,
		ignore:   cfg.IgnoreGlobs,
	}
	// An empty pattern extracts nothing, so every page numbers sequentially.
	if err := s.rebuild(""); err != nil {
		return err
	}
	// A chapter directory should only contain pages. Anything else is
	// warned about but still renamed, keeping the plan's numbering intact.
	for _, e := range s.entries {
		p := filepath.Join(abs, e.original)
		if info, err := os.Stat(p); err == nil && !info.Mode().IsRegular() {
			fmt.Fprintf(os.Stderr, "ERROR: directory contains something that is not a file: '%s'.\n", p)
		}
	}

	if interactive {
		fmt.Println(headerStyle.Render(abs))
		for _, e := range s.entries {
			fmt.Printf("    '%s' -> '%s'\n", e.original, e.proposed)
		}
		fmt.Print("Do rename? (Y / N): ")
		response := ""
		if scanner.Scan() {
			response = strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
		switch {
		case strings.HasPrefix(response, "y"):
		case strings.HasPrefix(response, "n"):
			return nil
		default:
			fmt.Printf("Unknown response %q, not doing rename.\n", response)
			return nil
		}
	}

	res := commitEntries(abs, s.entries)
	for _, err := range res.errs {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	}
	if len(res.errs) > 0 {
		return fmt.Errorf("%s: %d operations failed", abs, len(res.errs))
	}
	return nil
}

// checkDirs implements --check: report every dirent that does not already
// follow the naming convention. Returns 1 if anything is nonconforming.
func checkDirs(paths []string, cfg config) int {
	code := 0
	for _, path := range paths {
		bad, err := checkDir(path, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			code = 1
			continue
		}
		if bad > 0 {
			code = 1
		}
	}
	return code
}

func checkDir(path string, cfg config) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	dirents, err := os.ReadDir(abs)
	if err != nil {
		return 0, err
	}

	fmt.Println(headerStyle.Render(abs))
	bad := 0
	for _, d := range dirents {
		if matchesAny(d.Name(), cfg.IgnoreGlobs) {
			continue
		}
		if conformingName(d.Name(), d.IsDir()) {
			fmt.Printf("    %s '%s'\n", markNoop.Render(checkmark), d.Name())
		} else {
			fmt.Printf("    %s '%s'\n", markDelete.Render("✗"), d.Name())
			bad++
		}
	}
	if bad > 0 {
		fmt.Printf("%s\n", dimStyle.Render(fmt.Sprintf("%d nonconforming entries.", bad)))
	}
	return bad, nil
}
