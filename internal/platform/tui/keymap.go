package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a viewer command derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionBack
	ActionPause
	ActionStep
	ActionFaster
	ActionSlower
	ActionRestart
	ActionReload
	ActionScreenshot
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
)

// KeyMapper translates Bubble Tea key messages to viewer actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a viewer action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return ActionQuit
	case "b", "esc":
		return ActionBack
	case "p", " ":
		return ActionPause
	case ".", "n":
		return ActionStep
	case "+", "=":
		return ActionFaster
	case "-", "_":
		return ActionSlower
	case "r":
		return ActionRestart
	case "ctrl+r", "R":
		return ActionReload
	case "ctrl+s":
		return ActionScreenshot
	case "w", "up":
		return ActionUp
	case "s", "down":
		return ActionDown
	case "a", "left":
		return ActionLeft
	case "d", "right":
		return ActionRight
	}
	return ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRuns
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}
	return MenuActionNone
}
