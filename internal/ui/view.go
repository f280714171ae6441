package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ratcrate/ratcrate-tui/internal/jobs"
	"github.com/ratcrate/ratcrate-tui/internal/registry"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	listFraction    = 0.38
	listMinWidth    = 24
	chromeRows      = 4 // header, progress/status, input, footer
	installedMarker = " ✓"
)

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}

	listWidth := int(float64(width) * listFraction)
	if listWidth < listMinWidth {
		listWidth = listMinWidth
	}
	detailWidth := width - listWidth - 1
	bodyHeight := height - chromeRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	header := m.renderHeader(width)
	list := m.renderList(listWidth, bodyHeight)
	var detail string
	if m.showHelp {
		detail = renderHelp(detailWidth)
	} else {
		detail = m.renderDetail(detailWidth)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Height(bodyHeight).Render(list),
		" ",
		lipgloss.NewStyle().Width(detailWidth).Height(bodyHeight).Render(detail),
	)

	sections := []string{header, body, m.renderStatus(width), m.renderInput(width)}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(width int) string {
	title := "ratcrate"
	if m.pane == paneRepos {
		title += " · repository index"
	} else {
		title += " · package registry"
	}
	if m.busy() {
		title += " " + m.spin.View()
	}
	counts := fmt.Sprintf("%d/%d", len(m.activeList().Items), len(m.activeList().Full))
	line := fmt.Sprintf("%s  (%s)", title, counts)
	return styles.Header.Render(truncate.StringWithTail(line, uint(width), "…"))
}

func (m *Model) busy() bool {
	return m.bus.Busy(jobs.FetchPrimary) || m.bus.Busy(jobs.FetchSecondary) || m.bus.Busy(jobs.Install)
}

func (m *Model) renderList(width, height int) string {
	list := m.activeList()
	list.SyncViewport(height)
	visible := list.Visible(height)
	lines := make([]string, 0, height)
	for i, item := range visible {
		idx := list.Offset + i
		label := item.ID
		if m.pane == panePackages && m.installs.Installed(item.ID) {
			label += installedMarker
		}
		text := truncate.StringWithTail(label, uint(width-2), "…")
		if idx == list.Cursor {
			lines = append(lines, styles.Indicator.Render("▶ ")+styles.SelectedItem.Render(text))
		} else {
			lines = append(lines, "  "+styles.Item.Render(text))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, styles.Info.Render("  (no results)"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetail(width int) string {
	if m.pane == paneRepos {
		rec, ok := m.selectedRepo()
		if !ok {
			return styles.Info.Render("no repository selected")
		}
		return renderRepoDetail(rec, width)
	}
	rec, ok := m.selectedPackage()
	if !ok {
		return styles.Info.Render("no package selected")
	}
	return m.renderPackageDetail(rec, width)
}

func (m *Model) renderPackageDetail(rec registry.PackageRecord, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n",
		styles.DetailLabel.Render(rec.Name),
		styles.DetailValue.Render("v"+rec.Version))
	if rec.Description != "" {
		b.WriteString(wordwrap.String(styles.DetailValue.Render(rec.Description), width))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%s\n", styles.DetailLabel.Render("Statistics"))
	fmt.Fprintf(&b, "  downloads: %s\n", humanize.Comma(int64(rec.Downloads)))
	fmt.Fprintf(&b, "  weekly:    %s\n", humanize.Comma(int64(rec.RecentDownloads)))
	if rec.CreatedAt != "" {
		fmt.Fprintf(&b, "  created:   %s\n", rec.CreatedAt)
	}
	if rec.UpdatedAt != "" {
		fmt.Fprintf(&b, "  updated:   %s\n", rec.UpdatedAt)
	}
	b.WriteString("\n")
	if rec.Repository != "" || rec.Homepage != "" || rec.Documentation != "" {
		fmt.Fprintf(&b, "%s\n", styles.DetailLabel.Render("Links"))
		if rec.Repository != "" {
			fmt.Fprintf(&b, "  repo: %s\n", styles.Link.Render(rec.Repository))
		}
		if rec.Documentation != "" {
			fmt.Fprintf(&b, "  docs: %s\n", styles.Link.Render(rec.Documentation))
		}
		if rec.Homepage != "" {
			fmt.Fprintf(&b, "  home: %s\n", styles.Link.Render(rec.Homepage))
		}
		b.WriteString("\n")
	}
	if len(rec.Categories) > 0 {
		fmt.Fprintf(&b, "%s %s\n\n",
			styles.DetailLabel.Render("Categories"),
			styles.DetailValue.Render(strings.Join(rec.Categories, ", ")))
	}
	if inst, ok := m.installs.Get(rec.Name); ok {
		fmt.Fprintf(&b, "%s\n", styles.Installed.Render("installed in sandbox"))
		fmt.Fprintf(&b, "  binary: %s\n", inst.Binary)
	} else {
		fmt.Fprintf(&b, "%s %s\n",
			styles.DetailLabel.Render("Try it:"),
			styles.DetailValue.Render(":install "+rec.Name))
	}
	return b.String()
}

func renderRepoDetail(rec registry.RepoRecord, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styles.DetailLabel.Render(rec.FullName))
	if rec.Description != "" {
		b.WriteString(wordwrap.String(styles.DetailValue.Render(rec.Description), width))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "  stars:    %s\n", humanize.Comma(int64(rec.Stars)))
	fmt.Fprintf(&b, "  forks:    %s\n", humanize.Comma(int64(rec.Forks)))
	if rec.Language != "" {
		fmt.Fprintf(&b, "  language: %s\n", rec.Language)
	}
	if rec.UpdatedAt != "" {
		fmt.Fprintf(&b, "  updated:  %s\n", rec.UpdatedAt)
	}
	if len(rec.Topics) > 0 {
		fmt.Fprintf(&b, "  topics:   %s\n", strings.Join(rec.Topics, ", "))
	}
	if rec.URL != "" {
		fmt.Fprintf(&b, "\n  %s\n", styles.Link.Render(rec.URL))
	}
	return b.String()
}

func renderHelp(width int) string {
	lines := []string{
		styles.DetailLabel.Render("Navigation"),
		"  j/k, ↓/↑     move    ctrl+d/u  page",
		"  g/G          top/bottom    tab  switch pane",
		"",
		styles.DetailLabel.Render("Actions"),
		"  i            install selected package in a sandbox",
		"  x, enter     run the sandboxed binary",
		"  /            filter the current list",
		"  ?            toggle this help",
		"",
		styles.DetailLabel.Render("Commands (:)"),
		"  :all                :top [N]      :recent [N]    :new [N]",
		"  :search <query>     :gh <query>   :refresh",
		"  :install <pkg>      :run <pkg>    :uninstall <pkg>",
		"  :q                  :help",
	}
	out := strings.Join(lines, "\n")
	return wordwrap.String(out, width)
}

func (m *Model) renderStatus(width int) string {
	if m.progress != "" {
		return styles.Progress.Render(truncate.StringWithTail(m.progress, uint(width), "…"))
	}
	if m.errMsg != "" {
		return styles.Error.Render(truncate.StringWithTail(m.errMsg, uint(width), "…"))
	}
	return styles.Info.Render(truncate.StringWithTail(m.statusMsg, uint(width), "…"))
}

func (m *Model) renderInput(width int) string {
	switch m.mode {
	case modeCommand:
		badge := styles.ModeCommand.Render(" CMD ")
		return badge + " " + m.command.View()
	case modeFilter:
		badge := styles.ModeCommand.Render(" FLT ")
		return badge + " " + m.filter.View()
	default:
		badge := styles.ModeNormal.Render(" NRM ")
		hints := styles.Footer.Render("?: help  /: filter  `:`: command  q: quit")
		return truncate.StringWithTail(badge+" "+hints, uint(width), "…")
	}
}
