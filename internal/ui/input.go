package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
)

const pageJump = 10

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case modeCommand:
		return m.handleCommandKey(key)
	case modeFilter:
		return m.handleFilterKey(key)
	default:
		return m.handleNormalKey(key)
	}
}

func (m *Model) handleNormalKey(key tea.KeyMsg) tea.Cmd {
	list := m.activeList()
	switch key.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "j", "down":
		if list.MoveCursor(1) {
			events.UI.Cursor(m.pane.String(), list.Cursor)
		}
	case "k", "up":
		if list.MoveCursor(-1) {
			events.UI.Cursor(m.pane.String(), list.Cursor)
		}
	case "ctrl+d":
		list.MoveCursor(pageJump)
	case "ctrl+u":
		list.MoveCursor(-pageJump)
	case "g":
		list.MoveCursorHome()
	case "G":
		list.MoveCursorEnd()
	case "tab":
		if m.pane == panePackages {
			m.pane = paneRepos
		} else {
			m.pane = panePackages
		}
		events.UI.Pane(m.pane.String())
	case "i":
		if rec, ok := m.selectedPackage(); ok && m.pane == panePackages {
			m.spawnInstall(rec.Name)
		}
	case "x", "enter":
		if rec, ok := m.selectedPackage(); ok && m.pane == panePackages {
			return m.runInstalled(rec.Name)
		}
	case ":":
		m.mode = modeCommand
		m.command.SetValue("")
		return m.command.Focus()
	case "/":
		m.mode = modeFilter
		m.filter.SetValue(list.Filter)
		return m.filter.Focus()
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) handleCommandKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEnter:
		input := m.command.Value()
		m.mode = modeNormal
		m.command.Blur()
		m.command.SetValue("")
		events.Command.Entered(input)
		return m.executeCommand(input)
	case tea.KeyEsc:
		m.mode = modeNormal
		m.command.Blur()
		m.command.SetValue("")
		return nil
	}
	var cmd tea.Cmd
	m.command, cmd = m.command.Update(key)
	return cmd
}

func (m *Model) handleFilterKey(key tea.KeyMsg) tea.Cmd {
	list := m.activeList()
	switch key.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		m.filter.Blur()
		return nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.filter.Blur()
		m.filter.SetValue("")
		list.ClearFilter()
		events.Filter.Cleared(m.pane.String())
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(key)
	list.SetFilter(m.filter.Value())
	events.Filter.Changed(m.pane.String(), m.filter.Value())
	return cmd
}
