// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/export"
	"github.com/jeranaias/parley-tui/internal/interact"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/session"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady    State = iota // Ready for input
	StateAwaiting              // A send is in flight
	StateError                 // Showing an error
)

// overlay identifies which pane, if any, covers the transcript.
type overlay int

const (
	overlayNone overlay = iota
	overlayHistory
	overlayPins
	overlayHelp
	overlayRename
	overlayProject
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state   State
	overlay overlay

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Session wiring
	coord  *session.Coordinator
	engine *interact.Engine
	cfg    *config.Config

	// In-flight echo: a turn sent from a blank surface is invisible to the
	// view resolver until it is answered, so the TUI renders it from here.
	inFlightUser *model.Message
	pendingToken string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	prompt   textinput.Model // rename / project name entry
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Transcript cursor: index into the visible slice that message actions
	// target. -1 follows the newest message.
	cursor int

	// Overlay list selection
	listIndex int

	// Reply draft seeding the composer
	replyDraft *interact.ReplyDraft

	// Error state
	lastError error

	// Transient status line
	statusMsg   string
	statusSetAt time.Time
}

// New creates a chat model wired to a session coordinator.
func New(coord *session.Coordinator, engine *interact.Engine, cfg *config.Config) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	prompt := textinput.New()
	prompt.Prompt = "> "
	prompt.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	return Model{
		state:    StateReady,
		overlay:  overlayNone,
		theme:    theme,
		coord:    coord,
		engine:   engine,
		cfg:      cfg,
		viewport: vp,
		input:    input,
		prompt:   prompt,
		spinner:  sp,
		keyMap:   DefaultKeyMap(),
		cursor:   -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Coordinator exposes the underlying session coordinator.
func (m Model) Coordinator() *session.Coordinator {
	return m.coord
}

// exportOptions builds export options from the loaded config.
func (m Model) exportOptions() *export.Options {
	opts := export.DefaultOptions()
	if m.cfg != nil {
		if m.cfg.Export.OutputDir != "" {
			opts.OutputDir = m.cfg.Export.OutputDir
		}
		opts.IncludeMetadata = m.cfg.Export.IncludeMetadata
		opts.IncludeTimestamps = m.cfg.Export.IncludeTimestamps
	}
	return opts
}

// targetMessage resolves the message the cursor points at.
func (m Model) targetMessage() (model.Message, bool) {
	visible := m.coord.Visible()
	if len(visible) == 0 {
		return model.Message{}, false
	}
	idx := m.cursor
	if idx < 0 || idx >= len(visible) {
		idx = len(visible) - 1
	}
	return visible[idx], true
}
