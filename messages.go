package main

// ─── Messages ────────────────────────────────────────────────────────────────
//
// All messages are internal to the Update loop. Async tea.Cmd functions
// (in commands.go) produce these; Update handles them.

// commitDoneMsg carries the result of applying the plan to disk.
type commitDoneMsg struct {
	res commitResult
}

// dirChangedMsg is sent by the fsnotify watcher after debounce when the
// session directory changed underneath a pending plan.
type dirChangedMsg struct{}
