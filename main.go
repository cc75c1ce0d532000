package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		fmt.Println("mren: an interactive shell for renaming manga directories")
		fmt.Println()
		fmt.Println("Usage: mren [flags] [PATH...]")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --help, -h      Show this help")
		fmt.Println("  --version       Print version")
		fmt.Println("  --chapter [-i]  Rename pages in each chapter directory, non-interactively")
		fmt.Println("                  (-i prints the plan and asks before each directory)")
		fmt.Println("  --check         Report dirents that do not follow the naming convention")
		fmt.Println()
		fmt.Println("With no flags, opens the interactive shell on PATH (default: the")
		fmt.Println("current directory). Type 'help' at the prompt for commands.")
		return
	}

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("mren " + getVersion())
		return
	}

	cfg := loadConfig()

	if len(os.Args) > 1 && os.Args[1] == "--chapter" {
		paths := os.Args[2:]
		interactive := false
		if len(paths) > 0 && paths[0] == "-i" {
			interactive = true
			paths = paths[1:]
		}
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "mren --chapter needs at least one directory")
			os.Exit(1)
		}
		os.Exit(renameChapterDirs(paths, interactive, cfg))
	}

	if len(os.Args) > 1 && os.Args[1] == "--check" {
		paths := os.Args[2:]
		if len(paths) == 0 {
			paths = []string{"."}
		}
		os.Exit(checkDirs(paths, cfg))
	}

	if len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "-") {
		fmt.Fprintf(os.Stderr, "unknown flag: %s\nRun mren --help for usage.\n", os.Args[1])
		os.Exit(1)
	}

	path := "."
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	sess, err := newSession(path, cfg.IgnoreGlobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var watcher *fsnotify.Watcher
	if cfg.Watch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not start file watcher: %v\n", err)
			watcher = nil
		} else {
			defer watcher.Close()
			if err := watcher.Add(sess.basePath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not watch directory: %v\n", err)
			}
		}
	}

	m := newModel(sess, cfg, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(model); ok && fm.report != "" {
		fmt.Println(fm.report)
	}
}
