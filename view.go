package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// ─── Colors ──────────────────────────────────────────────────────────────────

var (
	colorAccent = lipgloss.Color("5")  // magenta, prompt and keys
	colorDim    = lipgloss.Color("8")  // gray, secondary text and ignored entries
	colorGreen  = lipgloss.Color("10") // no-op renames
	colorYellow = lipgloss.Color("11") // pending renames
	colorRed    = lipgloss.Color("9")  // deletes, errors
)

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	markRename    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	markNoop      = lipgloss.NewStyle().Foreground(colorGreen)
	markIgnored   = lipgloss.NewStyle().Foreground(colorDim)
	markDelete    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	ignoredEntry  = lipgloss.NewStyle().Foreground(colorDim)
)

const checkmark = "✓"

// entryMarker returns the styled one-character status for a plan entry:
// R pending rename, ✓ rename equal to original, I ignored, D delete.
func entryMarker(e entry) string {
	switch e.act {
	case actionIgnore:
		return markIgnored.Render("I")
	case actionDelete:
		return markDelete.Render("D")
	default:
		if e.original == e.proposed {
			return markNoop.Render(checkmark)
		}
		return markRename.Render("R")
	}
}

// renderEntries formats the whole plan for the ls command: the base path and
// type on the first line, then one indexed line per entry.
func renderEntries(s *session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", headerStyle.Render(contractHome(s.basePath)), s.dirType)
	for i, e := range s.entries {
		b.WriteString("\n")
		switch {
		case e.act == actionRename:
			fmt.Fprintf(&b, "    %03d (%s) '%s' -> '%s'", i, entryMarker(e), e.original, e.proposed)
		case e.act == actionIgnore:
			fmt.Fprintf(&b, "    %03d (%s) %s", i, entryMarker(e), ignoredEntry.Render("'"+e.original+"'"))
		default:
			fmt.Fprintf(&b, "    %03d (%s) '%s'", i, entryMarker(e), e.original)
		}
	}
	return b.String()
}

// renderMarkdownBody renders markdown through glamour, falling back to the
// raw text if the renderer cannot be built.
func renderMarkdownBody(markdown, style string, width int) string {
	pw := width
	if pw < 20 {
		pw = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(pw),
	)
	if err != nil {
		return markdown
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// ─── View ────────────────────────────────────────────────────────────────────

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	prompt := promptStyle.Render(contractHome(m.sess.basePath)) + " " + m.input.View()

	hint := dimStyle.Render("enter run · ? help · ctrl+c quit")
	if m.confirmWrite {
		hint = dimStyle.Render("y confirm write · n cancel")
	}

	return m.viewport.View() + "\n" + prompt + "\n" + hint
}
