package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// ─── Model ───────────────────────────────────────────────────────────────────

type model struct {
	sess    *session
	cfg     config
	watcher *fsnotify.Watcher

	input    textinput.Model
	viewport viewport.Model
	lines    []string // transcript, newest last
	width    int
	height   int
	ready    bool // true after first WindowSizeMsg

	glamourStyle string // "dark" or "light" based on terminal background
	helpCache    string // rendered help, invalidated on resize
	helpWidth    int

	confirmWrite bool   // write issued, waiting for y/n
	committing   bool   // commit in flight; input is ignored
	report       string // printed by main after the program exits
}

func newModel(sess *session, cfg config, watcher *fsnotify.Watcher) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()

	style := "dark"
	if !lipgloss.HasDarkBackground() {
		style = "light"
	}

	m := model{
		sess:         sess,
		cfg:          cfg,
		watcher:      watcher,
		input:        ti,
		viewport:     viewport.New(0, 0),
		glamourStyle: style,
	}
	m.say("Editing directory '%s'. Type 'help' or '?' for help.", sess.basePath)
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, watchDir(m.watcher))
	}
	return tea.Batch(cmds...)
}

// say appends a line (or several) to the transcript and scrolls to it.
func (m *model) say(format string, a ...any) {
	text := fmt.Sprintf(format, a...)
	m.lines = append(m.lines, strings.Split(text, "\n")...)
	m.refreshTranscript()
}

func (m *model) sayError(err error) {
	m.say("%s %v", errorStyle.Render("ERROR:"), err)
}

func (m *model) refreshTranscript() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// renderedHelp returns the glamour-rendered command summary, cached per width.
func (m *model) renderedHelp() string {
	if m.helpCache == "" || m.helpWidth != m.viewport.Width {
		m.helpWidth = m.viewport.Width
		m.helpCache = renderMarkdownBody(helpMarkdown(), m.glamourStyle, m.viewport.Width)
	}
	return m.helpCache
}

// dispatch routes one input line to its command handler.
func (m *model) dispatch(line string) tea.Cmd {
	word, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	c, ok := commandIndex[word]
	if !ok {
		m.sayError(fmt.Errorf("unknown command %q", word))
		return nil
	}
	return c.run(m, arg)
}

// ─── Update ──────────────────────────────────────────────────────────────────

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			if !m.committing {
				m.report = "Quit without writing renames."
				return m, tea.Quit
			}
			return m, nil
		}

		if m.committing {
			return m, nil
		}

		if m.confirmWrite {
			switch msg.String() {
			case "y", "Y":
				m.confirmWrite = false
				m.committing = true
				m.say("Writing renames to disk...")
				return m, commitPlan(m.sess.basePath, m.sess.entries)
			case "n", "N", "esc":
				m.confirmWrite = false
				m.say("Write cancelled.")
			}
			return m, nil
		}

		if msg.Type == tea.KeyEnter {
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.say("%s %s", promptStyle.Render(contractHome(m.sess.basePath)+" >"), line)
			return m, m.dispatch(line)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2 // prompt line + hint bar
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.input.Width = msg.Width - 4
		m.refreshTranscript()
		return m, nil

	case dirChangedMsg:
		m.say("%s", dimStyle.Render("Directory changed on disk. 'reload' to rescan."))
		if m.watcher != nil {
			return m, watchDir(m.watcher)
		}
		return m, nil

	case commitDoneMsg:
		summary := fmt.Sprintf("Renamed %d, deleted %d.", msg.res.renamed, msg.res.deleted)
		m.say("%s", summary)
		for _, err := range msg.res.errs {
			m.sayError(err)
		}
		m.report = summary
		if n := len(msg.res.errs); n > 0 {
			m.report = fmt.Sprintf("%s %d operations failed.", summary, n)
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
