package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// field is a minimal single-line text input.
type field struct {
	label  string
	value  string
	secret bool
}

func (f *field) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		f.value += " "
	case tea.KeyRunes:
		f.value += string(msg.Runes)
	}
}

func (f *field) render(focused bool) string {
	shown := f.value
	if f.secret {
		shown = strings.Repeat("*", len([]rune(f.value)))
	}
	cursor := " "
	if focused {
		cursor = "_"
	}
	line := f.label + ": " + shown + cursor
	if focused {
		return selectedStyle.Render(line)
	}
	return line
}

type form struct {
	fields []*field
	focus  int
}

func (fm *form) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "down":
		fm.focus = (fm.focus + 1) % len(fm.fields)
	case "shift+tab", "up":
		fm.focus = (fm.focus - 1 + len(fm.fields)) % len(fm.fields)
	default:
		fm.fields[fm.focus].handleKey(msg)
	}
}

func (fm *form) render() string {
	var b strings.Builder
	for i, f := range fm.fields {
		b.WriteString(f.render(i == fm.focus))
		b.WriteString("\n")
	}
	return b.String()
}
