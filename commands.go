package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// lastSelfWrite tracks when we last mutated the directory ourselves.
// The file watcher checks this to skip events caused by our own commits.
var lastSelfWrite atomic.Int64

// ─── Command Table ───────────────────────────────────────────────────────────

// A command maps one line of operator input to a session operation. Aliases
// are declared here, at table-definition time; every name also gets an
// upper-case form. The table is the single source for dispatch and help.
type command struct {
	name    string
	aliases []string
	args    string // argument summary for help
	usage   string
	run     func(m *model, arg string) tea.Cmd
}

// commandTable is assigned in init rather than at declaration to avoid an
// initialization cycle (commandTable -> cmdHelp -> renderedHelp ->
// helpMarkdown -> commandTable).
var commandTable []command

func init() {
	commandTable = []command{
		{
			name: "bulk", aliases: []string{"b"}, args: "PATTERN",
			usage: "Rebuild the plan extracting numbers with a regex. The pattern must capture the page number in exactly one group; entries it does not match fall back to sequential numbering.",
			run:   cmdBulk,
		},
		{
			name: "cd", args: "PATH|INDEX",
			usage: "Change the current directory to a path, or descend into the entry at INDEX. Resets the type to None and rebuilds the plan.",
			run:   cmdCd,
		},
		{
			name: "edit", aliases: []string{"e"}, args: "INDEX NAME",
			usage: "Set one entry's proposed name.",
			run:   cmdEdit,
		},
		{
			name: "help", aliases: []string{"h", "?"},
			usage: "Display this summary.",
			run:   cmdHelp,
		},
		{
			name: "ignore", aliases: []string{"i"}, args: "INDEX",
			usage: "Exclude one entry from the commit. The slot keeps its index.",
			run:   cmdIgnore,
		},
		{
			name: "ls", aliases: []string{"l"},
			usage: "List the plan: R pending rename, ✓ no-op, I ignored, D delete.",
			run:   cmdLs,
		},
		{
			name: "quit", aliases: []string{"q"},
			usage: "Quit without writing renames.",
			run:   cmdQuit,
		},
		{
			name: "reload", aliases: []string{"r"},
			usage: "Rescan the directory and rebuild the plan, discarding edits.",
			run:   cmdReload,
		},
		{
			name: "rm", aliases: []string{"delete", "d"}, args: "INDEX",
			usage: "Mark one entry for deletion from disk.",
			run:   cmdRm,
		},
		{
			name: "type", aliases: []string{"t"}, args: "n|s|c",
			usage: "Set the directory type: (n)one, (s)eries, or (c)hapter. Reload or bulk to regenerate names under the new type.",
			run:   cmdType,
		},
		{
			name: "write", aliases: []string{"w"},
			usage: "Commit the plan to disk and quit.",
			run:   cmdWrite,
		},
		{
			name: "yank", aliases: []string{"y"}, args: "INDEX",
			usage: "Copy the entry's full path to the clipboard.",
			run:   cmdYank,
		},
	}
}

var commandIndex = make(map[string]*command)

func init() {
	for i := range commandTable {
		c := &commandTable[i]
		registerCommand(c, c.name)
		for _, a := range c.aliases {
			registerCommand(c, a)
		}
	}
}

func registerCommand(c *command, name string) {
	commandIndex[name] = c
	commandIndex[strings.ToUpper(name)] = c
}

// helpMarkdown builds the help text from the command table so aliases and
// usage can never drift from dispatch.
func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	for _, c := range commandTable {
		names := c.name
		if len(c.aliases) > 0 {
			names += " / " + strings.Join(c.aliases, " / ")
		}
		if c.args != "" {
			names += " " + c.args
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", names, c.usage)
	}
	return b.String()
}

// ─── Handlers ────────────────────────────────────────────────────────────────

func cmdBulk(m *model, arg string) tea.Cmd {
	if err := m.sess.bulk(arg); err != nil {
		m.sayError(err)
		return nil
	}
	m.say("Plan rebuilt with pattern %q.", strings.TrimSpace(arg))
	return nil
}

func cmdCd(m *model, arg string) tea.Cmd {
	oldPath := m.sess.basePath
	if err := m.sess.changeDir(arg); err != nil {
		m.sayError(err)
		return nil
	}
	if m.watcher != nil && m.sess.basePath != oldPath {
		_ = m.watcher.Remove(oldPath)
		_ = m.watcher.Add(m.sess.basePath)
	}
	m.say("Editing directory '%s'.", m.sess.basePath)
	return nil
}

func cmdEdit(m *model, arg string) tea.Cmd {
	index, err := m.sess.edit(arg)
	if err != nil {
		m.sayError(err)
		return nil
	}
	e := m.sess.entries[index]
	m.say("Editing rename index %d: '%s' -> '%s'.", index, e.original, e.proposed)
	return nil
}

func cmdHelp(m *model, _ string) tea.Cmd {
	m.say("%s", strings.TrimRight(m.renderedHelp(), "\n"))
	return nil
}

func cmdIgnore(m *model, arg string) tea.Cmd {
	index, err := m.sess.markIgnore(arg)
	if err != nil {
		m.sayError(err)
		return nil
	}
	m.say("Ignoring index %d.", index)
	return nil
}

func cmdLs(m *model, _ string) tea.Cmd {
	m.say("%s", renderEntries(m.sess))
	return nil
}

func cmdQuit(m *model, _ string) tea.Cmd {
	m.report = "Quit without writing renames."
	return tea.Quit
}

func cmdReload(m *model, _ string) tea.Cmd {
	if err := m.sess.reload(); err != nil {
		m.sayError(err)
		return nil
	}
	m.say("Directory reloaded.")
	return nil
}

func cmdRm(m *model, arg string) tea.Cmd {
	index, err := m.sess.markDelete(arg)
	if err != nil {
		m.sayError(err)
		return nil
	}
	m.say("Index %d (%s) marked for delete.", index, filepath.Join(m.sess.basePath, m.sess.entries[index].original))
	return nil
}

func cmdType(m *model, arg string) tea.Cmd {
	if err := m.sess.setType(arg); err != nil {
		m.sayError(err)
		return nil
	}
	m.say("Setting directory type to %s.", m.sess.dirType)
	return nil
}

func cmdWrite(m *model, _ string) tea.Cmd {
	renames, deletes := m.sess.pendingCounts()
	if m.cfg.ConfirmWrite {
		m.confirmWrite = true
		m.say("Write %d renames and %d deletes? (y/n)", renames, deletes)
		return nil
	}
	m.committing = true
	m.say("Writing renames to disk...")
	return commitPlan(m.sess.basePath, m.sess.entries)
}

func cmdYank(m *model, arg string) tea.Cmd {
	index, _, err := m.sess.parseIndex(arg)
	if err != nil {
		m.sayError(err)
		return nil
	}
	path := filepath.Join(m.sess.basePath, m.sess.entries[index].original)
	if err := clipboard.WriteAll(path); err != nil {
		m.sayError(fmt.Errorf("clipboard: %w", err))
		return nil
	}
	m.say("Copied: %s", path)
	return nil
}

// ─── Commands ────────────────────────────────────────────────────────────────

// commitPlan applies the plan on the command goroutine and reports back.
// The self-write timestamp keeps the watcher from flagging our own renames.
func commitPlan(basePath string, entries []entry) tea.Cmd {
	return func() tea.Msg {
		lastSelfWrite.Store(time.Now().UnixMilli())
		res := commitEntries(basePath, entries)
		lastSelfWrite.Store(time.Now().UnixMilli())
		return commitDoneMsg{res: res}
	}
}

// watchDir watches the session directory for external changes. Sends a
// dirChangedMsg after a small debounce that coalesces rapid events.
func watchDir(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					time.Sleep(100 * time.Millisecond)
				drain:
					for {
						select {
						case _, ok := <-watcher.Events:
							if !ok {
								break drain
							}
						default:
							break drain
						}
					}
					// Skip events caused by our own commit
					if time.Since(time.UnixMilli(lastSelfWrite.Load())) < 500*time.Millisecond {
						continue
					}
					return dirChangedMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}
