package main

import (
	"fmt"
	"regexp"
	"strings"
)

// ─── Number Tokens ───────────────────────────────────────────────────────────

// Page/chapter numbers are not just digits: "7", "7-15", and "7-15b" are all
// valid tokens (a range covers a double-page spread, a letter suffix an
// inserted page). The canonical form zero-pads each number to at least three
// digits so lexicographic order matches numeric order.
var numberTokenRegex = regexp.MustCompile(`^(\d+)(?:-(\d+))?([a-z])?`)

// Names that already follow the naming convention.
var (
	chapterDirRegex = regexp.MustCompile(`^(.+) v(\d{3}) c(\d{3}[a-z]?)$`)
	archiveRegex    = regexp.MustCompile(`^(.+) v(\d{3}) c(\d{3}[a-z]?)\.cbz$`)
	pageRegex       = regexp.MustCompile(`^(.+) v(\d{3}) c(\d{3}[a-z]?) p(\d{3}(?:-\d{3})?[a-z]?)\.(jpg|png|webp)$`)
)

// defaultNumberPattern is the extraction pattern used by reload: any number
// token, anywhere in the name, captured whole.
const defaultNumberPattern = `(\d+(?:-\d+)?[a-z]?)`

type numberToken struct {
	value    int
	rangeEnd int  // -1 when the token has no range
	suffix   byte // 0 when the token has no letter suffix
}

// parseNumberToken parses a token anchored at the start of the trimmed text.
func parseNumberToken(text string) (numberToken, bool) {
	text = strings.TrimSpace(text)
	m := numberTokenRegex.FindStringSubmatch(text)
	if m == nil {
		return numberToken{}, false
	}
	tok := numberToken{rangeEnd: -1}
	fmt.Sscanf(m[1], "%d", &tok.value)
	if m[2] != "" {
		fmt.Sscanf(m[2], "%d", &tok.rangeEnd)
	}
	if m[3] != "" {
		tok.suffix = m[3][0]
	}
	return tok, true
}

// padded returns the canonical text form: the value zero-padded to at least
// three digits, then the range end (if any) padded the same way, then the
// suffix letter verbatim. Values past 999 keep their full width.
func (t numberToken) padded() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%03d", t.value)
	if t.rangeEnd >= 0 {
		fmt.Fprintf(&b, "-%03d", t.rangeEnd)
	}
	if t.suffix != 0 {
		b.WriteByte(t.suffix)
	}
	return b.String()
}

// highest returns the largest number the token covers, used to advance the
// plan counter past everything this token consumed.
func (t numberToken) highest() int {
	if t.rangeEnd > t.value {
		return t.rangeEnd
	}
	return t.value
}

// extractNumberToken applies an operator-supplied pattern with exactly one
// capture group to name and parses the captured text of the last match as a
// number token. The last match wins because filenames often carry other
// numbers (years, resolutions) before the real page number.
//
// Returns ok == false if the pattern is empty, does not compile, has a
// capture-group count other than one, matches nothing, or the captured text
// is not a number token.
func extractNumberToken(pattern, name string) (numberToken, bool) {
	if pattern == "" {
		return numberToken{}, false
	}
	re, err := regexp.Compile(pattern)
	if err != nil || re.NumSubexp() != 1 {
		return numberToken{}, false
	}
	matches := re.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return numberToken{}, false
	}
	return parseNumberToken(matches[len(matches)-1][1])
}

// validateNumberPattern checks the one-capture-group contract up front so
// bulk can reject a bad pattern as a whole instead of silently skipping
// every entry.
func validateNumberPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("no pattern for bulk rename")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("pattern does not compile: %v", err)
	}
	if n := re.NumSubexp(); n != 1 {
		return fmt.Errorf("pattern must have exactly one capture group, has %d", n)
	}
	return nil
}

// conformingName reports whether a dirent already follows the naming
// convention: chapter directories, .cbz archives, and page images.
func conformingName(name string, isDir bool) bool {
	if isDir {
		return chapterDirRegex.MatchString(name)
	}
	return archiveRegex.MatchString(name) || pageRegex.MatchString(name)
}
