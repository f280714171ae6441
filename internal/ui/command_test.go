package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratcrate/ratcrate-tui/internal/sandbox"
)

func itemIDs(m *Model) []string {
	ids := make([]string, 0, len(m.packageList.Items))
	for _, item := range m.packageList.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestTopCommandSortsByDownloads(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.executeCommand("top 2")

	ids := itemIDs(m)
	if len(ids) != 2 || ids[0] != "crossterm" || ids[1] != "ratatui" {
		t.Fatalf("unexpected order %v", ids)
	}
	if m.packageList.Cursor != 0 {
		t.Fatalf("cursor = %d, want reset to first result", m.packageList.Cursor)
	}
	if len(m.packages.Packages) != 3 {
		t.Fatalf("sorting must not mutate the snapshot")
	}
}

func TestRecentCommandSortsByWeeklyDownloads(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.executeCommand("recent 1")

	if ids := itemIDs(m); len(ids) != 1 || ids[0] != "ratatui" {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestNewCommandSortsByCreationDate(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.executeCommand("new")

	ids := itemIDs(m)
	if len(ids) != 3 || ids[0] != "ratatui" || ids[2] != "tui" {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestAllCommandRestoresFullList(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.executeCommand("top 1")
	m.executeCommand("all")

	if got := len(m.packageList.Items); got != 3 {
		t.Fatalf("expected full list restored, got %d items", got)
	}
}

func TestUnknownCommandFiltersLocally(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.executeCommand("terminal")

	if got := len(m.packageList.Items); got != 2 {
		t.Fatalf("expected local filter over descriptions, got %d items", got)
	}
	if !strings.Contains(m.statusMsg, "matching") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestQuitCommand(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	cmd := m.executeCommand("q")
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestInstallCommandRequiresTarget(t *testing.T) {
	m := newTestModel(t, Options{})
	m.executeCommand("install")
	if !strings.Contains(m.errMsg, "usage: :install") {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
}

func TestInstallCommandUsesSelection(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.packageList.Cursor = 1
	m.executeCommand("install")
	if m.installing != "crossterm" {
		t.Fatalf("installing = %q, want the selected package", m.installing)
	}
	drainUntil(t, m, func() bool { return m.installs.Installed("crossterm") })
}

func TestUninstallCommandRemovesSandbox(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	root := filepath.Join(t.TempDir(), "root")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	m.installs.Adopt(sandbox.Installation{Name: "ratatui", Root: root})

	m.executeCommand("uninstall ratatui")
	if m.installs.Installed("ratatui") {
		t.Fatalf("sandbox record still present")
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("sandbox root still on disk")
	}
	if !strings.Contains(m.statusMsg, "removed sandbox") {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m.executeCommand("uninstall ratatui")
	if m.errMsg == "" {
		t.Fatalf("removing an unknown sandbox should surface an error")
	}
}

func TestSearchCommandNeedsQuery(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	m.executeCommand("search")
	if !strings.Contains(m.errMsg, "usage: :search") {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
}

func TestLimitArg(t *testing.T) {
	if got := limitArg(nil); got != defaultListLimit {
		t.Fatalf("limitArg(nil) = %d", got)
	}
	if got := limitArg([]string{"25"}); got != 25 {
		t.Fatalf("limitArg(25) = %d", got)
	}
	if got := limitArg([]string{"-3"}); got != defaultListLimit {
		t.Fatalf("limitArg(-3) = %d", got)
	}
	if got := limitArg([]string{"lots"}); got != defaultListLimit {
		t.Fatalf("limitArg(lots) = %d", got)
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNavigation(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	h := NewHarness(m)

	h.Send(keyRunes("j"))
	h.Send(keyRunes("j"))
	if h.Model().packageList.Cursor != 2 {
		t.Fatalf("cursor = %d after two j presses", h.Model().packageList.Cursor)
	}
	h.Send(keyRunes("g"))
	if h.Model().packageList.Cursor != 0 {
		t.Fatalf("g should jump to the first item")
	}
	h.Send(keyRunes("G"))
	if h.Model().packageList.Cursor != 2 {
		t.Fatalf("G should jump to the last item")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if h.Model().pane != paneRepos {
		t.Fatalf("tab should switch panes")
	}
}

func TestCommandModeRoundTrip(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	h := NewHarness(m)

	h.Send(keyRunes(":"))
	if h.Model().mode != modeCommand {
		t.Fatalf("':' should enter command mode")
	}
	for _, r := range "top 1" {
		h.Send(keyRunes(string(r)))
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.Model().mode != modeNormal {
		t.Fatalf("enter should return to normal mode")
	}
	if got := len(h.Model().packageList.Items); got != 1 {
		t.Fatalf("command did not run, %d items", got)
	}
}

func TestFilterModeLiveAndEscape(t *testing.T) {
	m := newTestModel(t, Options{Initial: testSnapshot()})
	h := NewHarness(m)

	h.Send(keyRunes("/"))
	for _, r := range "library" {
		h.Send(keyRunes(string(r)))
	}
	if got := len(h.Model().packageList.Items); got != 2 {
		t.Fatalf("live filter matched %d items, want 2", got)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.Model().mode != modeNormal {
		t.Fatalf("esc should leave filter mode")
	}
	if got := len(h.Model().packageList.Items); got != 3 {
		t.Fatalf("esc should clear the filter, got %d items", got)
	}
}
