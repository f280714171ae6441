package ui

import (
	"fmt"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
)

// runInstalled launches a sandboxed binary synchronously. tea.ExecProcess
// leaves the alternate screen and raw input mode, hands the terminal to
// the child for the duration of the run, and restores the UI on every
// exit path, including a failure to start the process. Only the exit
// status comes back; the child's output goes straight to the terminal.
func (m *Model) runInstalled(name string) tea.Cmd {
	inst, ok := m.installs.Get(name)
	if !ok {
		m.errMsg = fmt.Sprintf("%s is not installed (:install %s first)", name, name)
		return nil
	}
	events.Exec.Run(name, inst.Binary)
	cmd := exec.Command(inst.Binary)
	cmd.Dir = inst.Root
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return execFinishedMsg{name: name, err: err}
	})
}

func (m *Model) handleExecFinishedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(execFinishedMsg)
	if !ok {
		return nil
	}
	events.Exec.Done(result.name, result.err)
	if result.err != nil {
		m.errMsg = fmt.Sprintf("%s exited with error: %v", result.name, result.err)
		return nil
	}
	m.setStatus(fmt.Sprintf("%s finished", result.name))
	return nil
}
