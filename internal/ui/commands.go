package ui

import (
	"errors"
	"fmt"

	"github.com/ratcrate/ratcrate-tui/internal/cache"
	"github.com/ratcrate/ratcrate-tui/internal/jobs"
	"github.com/ratcrate/ratcrate-tui/internal/logging"
	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
	"github.com/ratcrate/ratcrate-tui/internal/sandbox"
)

// spawnPrimaryFetch starts a primary registry search. A search already in
// flight leaves the request rejected, not queued.
func (m *Model) spawnPrimaryFetch(query string) {
	err := m.bus.Spawn(jobs.FetchPrimary, func(emit func(jobs.Msg)) {
		snap, err := m.client.SearchPackages(query)
		if err != nil {
			events.Fetch.Error("primary", err)
			emit(primaryResult{err: err})
			return
		}
		events.Fetch.Primary(query, len(snap.Packages), snap.Total)
		emit(primaryResult{snap: snap})
	})
	if errors.Is(err, jobs.ErrBusy) {
		m.errMsg = "a registry search is already running"
		return
	}
	m.setStatus(fmt.Sprintf("searching registry for %q…", query))
}

// spawnSecondaryFetch starts a secondary index search.
func (m *Model) spawnSecondaryFetch(query string) {
	err := m.bus.Spawn(jobs.FetchSecondary, func(emit func(jobs.Msg)) {
		snap, err := m.client.SearchRepos(query)
		if err != nil {
			events.Fetch.Error("secondary", err)
			emit(secondaryResult{err: err})
			return
		}
		events.Fetch.Secondary(query, len(snap.Repos), snap.Total)
		emit(secondaryResult{snap: snap})
	})
	if errors.Is(err, jobs.ErrBusy) {
		m.errMsg = "an index search is already running"
		return
	}
	m.setStatus(fmt.Sprintf("searching index for %q…", query))
}

// spawnInstall starts a sandboxed install for the named package. Both
// rejection paths are synchronous: AlreadyInstalled from the manager and
// Busy from the bus guard, before any work is spawned.
func (m *Model) spawnInstall(name string) {
	task, err := m.installs.Begin(name)
	if err != nil {
		if errors.Is(err, sandbox.ErrAlreadyInstalled) {
			m.errMsg = fmt.Sprintf("%s is already installed (:run %s to launch it)", name, name)
		} else {
			m.errMsg = err.Error()
		}
		return
	}
	if err := m.bus.Spawn(jobs.Install, task); err != nil {
		m.errMsg = "an install is already running"
		return
	}
	m.installing = name
	m.setStatus(fmt.Sprintf("installing %s into a sandbox…", name))
}

// drainJobs pulls at most one message per category and folds it into
// state. Called once per tick.
func (m *Model) drainJobs() {
	if msg, ok := m.bus.Drain(jobs.FetchPrimary); ok {
		m.foldPrimary(msg)
	}
	if msg, ok := m.bus.Drain(jobs.FetchSecondary); ok {
		m.foldSecondary(msg)
	}
	if msg, ok := m.bus.Drain(jobs.Install); ok {
		m.foldInstall(msg)
	}
}

func (m *Model) foldPrimary(msg jobs.Msg) {
	switch res := msg.(type) {
	case primaryResult:
		if res.err != nil {
			m.errMsg = res.err.Error()
			return
		}
		m.applyPackages(res.snap)
		m.setStatus(fmt.Sprintf("%d packages (of %d total) for %q", len(res.snap.Packages), res.snap.Total, res.snap.Query))
		if err := cache.Save(m.cachePath, res.snap); err != nil {
			logging.Error(err)
		}
	case jobs.Failure:
		m.errMsg = res.Reason
	}
}

func (m *Model) foldSecondary(msg jobs.Msg) {
	switch res := msg.(type) {
	case secondaryResult:
		if res.err != nil {
			m.errMsg = res.err.Error()
			return
		}
		m.applyRepos(res.snap)
		m.pane = paneRepos
		m.setStatus(fmt.Sprintf("%d repositories (of %d total) for %q", len(res.snap.Repos), res.snap.Total, res.snap.Query))
	case jobs.Failure:
		m.errMsg = res.Reason
	}
}

func (m *Model) foldInstall(msg jobs.Msg) {
	switch p := msg.(type) {
	case sandbox.Starting:
		m.progress = fmt.Sprintf("installing %s: starting", m.installing)
	case sandbox.Downloading:
		m.progress = fmt.Sprintf("installing %s: downloading %d%%", m.installing, p.Percent)
	case sandbox.Compiling:
		m.progress = fmt.Sprintf("installing %s: compiling %d%%", m.installing, p.Percent)
	case sandbox.Ready:
		m.installs.Adopt(p.Install)
		m.progress = ""
		m.setStatus(fmt.Sprintf("installed %s → %s (:run %s)", p.Install.Name, p.Install.Binary, p.Install.Name))
		m.installing = ""
	case sandbox.Finished:
		m.progress = ""
		m.installing = ""
	case sandbox.Error:
		m.progress = ""
		m.errMsg = fmt.Sprintf("install %s failed: %s", m.installing, p.Reason)
		m.installing = ""
	case jobs.Failure:
		m.progress = ""
		m.errMsg = p.Reason
		m.installing = ""
	}
}
