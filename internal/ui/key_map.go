package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	moveLeft  key.Binding
	moveRight key.Binding
	add       key.Binding
	remove    key.Binding
	refresh   key.Binding
	board     key.Binding
	weeks     key.Binding
	activity  key.Binding
	toggle    key.Binding
	enter     key.Binding
	back      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		moveLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move card left")),
		moveRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move card right")),
		add:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		remove:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		board:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "board")),
		weeks:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weeks")),
		activity:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activity")),
		toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "expand")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.moveLeft, k.moveRight, k.add, k.remove},
		{k.board, k.weeks, k.activity, k.refresh},
		{k.enter, k.back, k.quit},
	}
}
