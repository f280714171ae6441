package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratcrate/ratcrate-tui/internal/jobs"
	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
	"github.com/ratcrate/ratcrate-tui/internal/registry"
	"github.com/ratcrate/ratcrate-tui/internal/sandbox"
	"github.com/ratcrate/ratcrate-tui/internal/theme"
	"github.com/ratcrate/ratcrate-tui/internal/ui/state"
)

type pane int

const (
	panePackages pane = iota
	paneRepos
)

func (p pane) String() string {
	if p == paneRepos {
		return "repos"
	}
	return "packages"
}

type mode int

const (
	modeNormal mode = iota
	modeCommand
	modeFilter
)

// tickInterval bounds how long the loop waits between drain passes.
const tickInterval = 100 * time.Millisecond

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options bundles the collaborators the model needs.
type Options struct {
	Client       *registry.Client
	Installs     *sandbox.Manager
	CachePath    string
	DefaultQuery string
	Initial      registry.Snapshot
	Verbose      bool
}

// Model implements the Bubble Tea model for the registry explorer.
type Model struct {
	bus          *jobs.Bus
	client       *registry.Client
	installs     *sandbox.Manager
	cachePath    string
	defaultQuery string
	verbose      bool

	packages     registry.Snapshot
	repos        registry.RepoSnapshot
	packageIndex map[string]registry.PackageRecord
	repoIndex    map[string]registry.RepoRecord
	packageList  *state.List
	repoList     *state.List

	pane    pane
	mode    mode
	command textinput.Model
	filter  textinput.Model
	spin    spinner.Model

	installing string
	progress   string
	statusMsg  string
	errMsg     string
	showHelp   bool
	width      int
	height     int

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around an optional initial snapshot.
func NewModel(opts Options) *Model {
	command := textinput.New()
	command.Prompt = ":"
	command.CharLimit = 120
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "type to filter"
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := &Model{
		bus:          jobs.New(),
		client:       opts.Client,
		installs:     opts.Installs,
		cachePath:    opts.CachePath,
		defaultQuery: opts.DefaultQuery,
		verbose:      opts.Verbose,
		packageIndex: make(map[string]registry.PackageRecord),
		repoIndex:    make(map[string]registry.RepoRecord),
		packageList:  state.NewList(nil),
		repoList:     state.NewList(nil),
		command:      command,
		filter:       filter,
		spin:         sp,
	}
	m.applyPackages(opts.Initial)
	if n := len(opts.Initial.Packages); n > 0 {
		m.setStatus(fmt.Sprintf("%d packages loaded from cache", n))
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.spin.Tick}
	if len(m.packages.Packages) == 0 {
		m.spawnPrimaryFetch(m.defaultQuery)
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(execFinishedMsg{}):   m.handleExecFinishedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// handleTickMsg is the core loop step: drain each job category at most
// once, then re-arm the tick.
func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	m.drainJobs()
	return tickCmd()
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	return nil
}

// applyPackages replaces the primary snapshot wholesale.
func (m *Model) applyPackages(snap registry.Snapshot) {
	m.packages = snap
	m.packageIndex = make(map[string]registry.PackageRecord, len(snap.Packages))
	for _, rec := range snap.Packages {
		m.packageIndex[rec.Name] = rec
	}
	m.packageList.SetItems(packageItems(snap.Packages))
}

// applyRepos replaces the secondary snapshot wholesale.
func (m *Model) applyRepos(snap registry.RepoSnapshot) {
	m.repos = snap
	m.repoIndex = make(map[string]registry.RepoRecord, len(snap.Repos))
	for _, rec := range snap.Repos {
		m.repoIndex[rec.FullName] = rec
	}
	m.repoList.SetItems(repoItems(snap.Repos))
}

func packageItems(records []registry.PackageRecord) []state.Item {
	items := make([]state.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, state.Item{
			ID:    rec.Name,
			Label: rec.Name + " " + rec.Description,
		})
	}
	return items
}

func repoItems(records []registry.RepoRecord) []state.Item {
	items := make([]state.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, state.Item{
			ID:    rec.FullName,
			Label: rec.FullName + " " + rec.Description,
		})
	}
	return items
}

func (m *Model) activeList() *state.List {
	if m.pane == paneRepos {
		return m.repoList
	}
	return m.packageList
}

func (m *Model) selectedPackage() (registry.PackageRecord, bool) {
	item, ok := m.packageList.Selected()
	if !ok {
		return registry.PackageRecord{}, false
	}
	rec, ok := m.packageIndex[item.ID]
	return rec, ok
}

func (m *Model) selectedRepo() (registry.RepoRecord, bool) {
	item, ok := m.repoList.Selected()
	if !ok {
		return registry.RepoRecord{}, false
	}
	rec, ok := m.repoIndex[item.ID]
	return rec, ok
}

func (m *Model) setStatus(text string) {
	m.statusMsg = text
	m.errMsg = ""
	events.UI.Status(text)
}
