package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pingpong/internal/config"
	"github.com/vovakirdan/tui-pingpong/internal/core"
)

// KeyMap holds the key bindings for the game screen.
// It implements help.KeyMap so the help bar and the instructions panel are
// generated from the same bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Stop       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "move right"),
		),
		Stop: key.NewBinding(
			key.WithKeys(" ", "s", "down"),
			key.WithHelp("space", "stop paddle"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "play again"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "how to play"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the one-line help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Help, k.Quit}
}

// FullHelp returns bindings for the instructions panel.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Stop},
		{k.Pause, k.Restart},
		{k.Help, k.Screenshot, k.Quit},
	}
}

// MapKey translates a key message to an action.
// Screenshot is handled by the model and maps to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Stop):
		return core.ActionStop
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// keyHold synthesizes key releases. Terminals report presses and auto-repeats
// but never releases, so a steering key counts as held until no repeat has
// arrived within the release window.
type keyHold struct {
	action   core.Action // ActionLeft, ActionRight or ActionNone
	deadline time.Time
}

// press registers a steering key. It reports whether the key is newly held;
// auto-repeats of the held key only extend the window.
func (h *keyHold) press(a core.Action, now time.Time, cfg config.InputConfig) bool {
	if h.action == a {
		h.deadline = now.Add(cfg.ReleaseAfter)
		return false
	}
	h.action = a
	h.deadline = now.Add(cfg.FirstReleaseAfter)
	return true
}

// expire returns the release action for the held key once its window has
// passed, or ActionNone.
func (h *keyHold) expire(now time.Time) core.Action {
	if h.action == core.ActionNone || now.Before(h.deadline) {
		return core.ActionNone
	}
	released := releaseOf(h.action)
	h.clear()
	return released
}

func (h *keyHold) clear() {
	h.action = core.ActionNone
	h.deadline = time.Time{}
}

func releaseOf(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionReleaseLeft
	case core.ActionRight:
		return core.ActionReleaseRight
	}
	return core.ActionNone
}
