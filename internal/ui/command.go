package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
	"github.com/ratcrate/ratcrate-tui/internal/registry"
)

const defaultListLimit = 10

// executeCommand dispatches a parsed command-mode input. Unknown commands
// fall back to a local filter over the package list, matching how quick
// searches behave.
func (m *Model) executeCommand(input string) tea.Cmd {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	parts := strings.Fields(input)
	command, args := parts[0], parts[1:]

	switch command {
	case "q", "quit":
		return tea.Quit
	case "all":
		m.packageList.ClearFilter()
		m.packageList.SetItems(packageItems(m.packages.Packages))
		m.pane = panePackages
		m.setStatus(fmt.Sprintf("showing all %d packages", len(m.packages.Packages)))
	case "top":
		m.showSorted("downloads", limitArg(args), func(a, b registry.PackageRecord) bool {
			return a.Downloads > b.Downloads
		})
	case "recent":
		m.showSorted("weekly downloads", limitArg(args), func(a, b registry.PackageRecord) bool {
			return a.RecentDownloads > b.RecentDownloads
		})
	case "new":
		m.showSorted("creation date", limitArg(args), func(a, b registry.PackageRecord) bool {
			return a.CreatedAt > b.CreatedAt
		})
	case "search":
		if len(args) == 0 {
			m.errMsg = "usage: :search <query>"
			return nil
		}
		m.spawnPrimaryFetch(strings.Join(args, " "))
	case "gh", "index":
		if len(args) == 0 {
			m.errMsg = fmt.Sprintf("usage: :%s <query>", command)
			return nil
		}
		m.spawnSecondaryFetch(strings.Join(args, " "))
	case "refresh":
		query := m.packages.Query
		if query == "" {
			query = m.defaultQuery
		}
		m.spawnPrimaryFetch(query)
	case "install":
		name := argOrSelected(args, m)
		if name == "" {
			m.errMsg = "usage: :install <package>"
			return nil
		}
		m.spawnInstall(name)
	case "run":
		name := argOrSelected(args, m)
		if name == "" {
			m.errMsg = "usage: :run <package>"
			return nil
		}
		return m.runInstalled(name)
	case "uninstall":
		if len(args) == 0 {
			m.errMsg = "usage: :uninstall <package>"
			return nil
		}
		if err := m.installs.Remove(args[0]); err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.setStatus(fmt.Sprintf("removed sandbox for %s", args[0]))
	case "help":
		m.showHelp = !m.showHelp
	default:
		events.Command.Unknown(input)
		m.packageList.SetFilter(input)
		m.pane = panePackages
		m.setStatus(fmt.Sprintf("%d packages matching %q", len(m.packageList.Items), input))
	}
	return nil
}

// showSorted rebuilds the package list from a sorted copy of the current
// snapshot, truncated to limit. The snapshot itself stays untouched.
func (m *Model) showSorted(label string, limit int, less func(a, b registry.PackageRecord) bool) {
	sorted := append([]registry.PackageRecord(nil), m.packages.Packages...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	m.packageList.ClearFilter()
	m.packageList.SetItems(packageItems(sorted))
	m.packageList.MoveCursorHome()
	m.pane = panePackages
	m.setStatus(fmt.Sprintf("top %d by %s", len(sorted), label))
}

func limitArg(args []string) int {
	if len(args) == 0 {
		return defaultListLimit
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return defaultListLimit
	}
	return n
}

func argOrSelected(args []string, m *Model) string {
	if len(args) > 0 {
		return args[0]
	}
	if rec, ok := m.selectedPackage(); ok {
		return rec.Name
	}
	return ""
}
