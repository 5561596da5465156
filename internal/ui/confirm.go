// Package ui provides the interactive collaborator surface for drive group
// management. This module implements the duplicate-serial confirmation prompt
// as a small Bubble Tea program.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmPrompter presents cross-group duplicate-serial conflicts to the
// operator as a blocking yes/no prompt. It satisfies storage.ConflictPrompter
// and is the only suspend point in an otherwise synchronous session.
type ConfirmPrompter struct{}

// ConfirmSharedSerial blocks on a yes/no prompt and reports the operator's
// choice. Escape and ctrl+c count as a decline.
func (ConfirmPrompter) ConfirmSharedSerial(serial string, conflictGroupID string) (bool, error) {
	prompt := fmt.Sprintf("Serial %s is already used by storage group %s.\nUse it here anyway?", serial, conflictGroupID)

	final, err := tea.NewProgram(newConfirmModel(prompt)).Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation prompt: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected confirmation model type %T", final)
	}
	return m.accepted, nil
}

// confirmModel is the Bubble Tea model behind the yes/no dialog.
type confirmModel struct {
	prompt   string
	cursor   int
	accepted bool
	done     bool
}

func newConfirmModel(prompt string) confirmModel {
	// Default cursor on "No" so a reflexive enter never shares a serial.
	return confirmModel{prompt: prompt, cursor: 1}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k", "down", "j", "left", "right", "tab":
		m.cursor = 1 - m.cursor
	case "y", "Y":
		m.accepted = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "esc", "ctrl+c", "q":
		m.accepted = false
		m.done = true
		return m, tea.Quit
	case "enter", " ":
		m.accepted = m.cursor == 0
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("⚠️  Duplicate Serial Number") + "\n\n")
	s.WriteString(warningStyle.Render(m.prompt) + "\n\n")

	choices := []string{"✅ Yes, share the drive", "❌ No, cancel"}
	for i, choice := range choices {
		if m.cursor == i {
			s.WriteString(selectedMenuItemStyle.Render("❯ "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render("  "+choice) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • y/n: answer directly"))
	return s.String()
}
