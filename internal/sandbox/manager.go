// Package sandbox installs packages into disposable roots with an isolated
// cargo home, so trying a package never touches the user's real environment.
package sandbox

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ratcrate/ratcrate-tui/internal/jobs"
	"github.com/ratcrate/ratcrate-tui/internal/logging"
	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
)

// Installation records one sandboxed install. The Root directory is owned
// by this record for its lifetime; removal of the record triggers a
// best-effort delete of the directory.
type Installation struct {
	Name      string
	Root      string
	CargoHome string
	Binary    string
}

// ErrAlreadyInstalled is returned when an identity already has a sandbox.
var ErrAlreadyInstalled = errors.New("package already installed in a sandbox")

const (
	cargoHomeDir = "cargo-home"
	binDir       = "bin"
)

// Manager runs the external installer and owns the installation set.
type Manager struct {
	command  string
	tempBase string

	mu       sync.Mutex
	installs map[string]Installation
}

// Option customises a Manager.
type Option func(*Manager)

// WithCommand overrides the installer executable (default "cargo").
func WithCommand(cmd string) Option {
	return func(m *Manager) { m.command = cmd }
}

// WithTempBase places sandbox roots under dir instead of the OS temp
// directory.
func WithTempBase(dir string) Option {
	return func(m *Manager) { m.tempBase = dir }
}

// NewManager creates a Manager with no installations.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		command:  "cargo",
		installs: make(map[string]Installation),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin validates an install request and returns the job task. The
// AlreadyInstalled check happens here, synchronously, before anything is
// spawned; the per-category Busy guard lives in the job bus.
func (m *Manager) Begin(name string) (jobs.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("empty package name")
	}
	m.mu.Lock()
	_, exists := m.installs[name]
	m.mu.Unlock()
	if exists {
		return nil, fmt.Errorf("%s: %w", name, ErrAlreadyInstalled)
	}
	return m.task(name), nil
}

func (m *Manager) task(name string) jobs.Task {
	return func(emit func(jobs.Msg)) {
		emit(Starting{})
		events.Install.Start(name)

		root, err := os.MkdirTemp(m.tempBase, "ratcrate-sandbox-*")
		if err != nil {
			emit(Error{Reason: fmt.Sprintf("create sandbox root: %v", err)})
			return
		}
		cargoHome := filepath.Join(root, cargoHomeDir)
		binaries := filepath.Join(cargoHome, binDir)
		if err := os.MkdirAll(binaries, 0o755); err != nil {
			removeQuietly(root)
			emit(Error{Reason: fmt.Sprintf("create cargo home: %v", err)})
			return
		}

		emit(Downloading{Percent: 10})
		emit(Downloading{Percent: 25})

		cmd := exec.Command(m.command, "install", name)
		cmd.Env = append(os.Environ(), "CARGO_HOME="+cargoHome)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		runErr := cmd.Run()

		emit(Compiling{Percent: 75})

		if runErr != nil {
			removeQuietly(root)
			reason := strings.TrimSpace(stderr.String())
			if reason == "" {
				reason = runErr.Error()
			}
			events.Install.Failure(name, reason)
			emit(Error{Reason: reason})
			return
		}

		binary, err := resolveBinary(binaries, name)
		if err != nil {
			removeQuietly(root)
			events.Install.Failure(name, err.Error())
			emit(Error{Reason: err.Error()})
			return
		}

		emit(Compiling{Percent: 100})
		events.Install.Ready(name, binary)
		emit(Ready{Install: Installation{
			Name:      name,
			Root:      root,
			CargoHome: cargoHome,
			Binary:    binary,
		}})
	}
}

// resolveBinary picks the produced executable: the conventional
// <cargo-home>/bin/<name> path when present, otherwise the first regular
// file in that directory (ReadDir order, i.e. lexical).
func resolveBinary(dir, name string) (string, error) {
	expected := filepath.Join(dir, name)
	if info, err := os.Stat(expected); err == nil && info.Mode().IsRegular() {
		return expected, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan binary directory: %v", err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", errors.New("no binary found")
}

// Adopt inserts the installation into the manager's set. The UI calls this
// when it drains a Ready message, completing the ownership transfer.
func (m *Manager) Adopt(inst Installation) {
	m.mu.Lock()
	m.installs[inst.Name] = inst
	m.mu.Unlock()
}

// Get returns the installation for a package name.
func (m *Manager) Get(name string) (Installation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.installs[name]
	return inst, ok
}

// Installed reports whether the identity has a sandbox on record.
func (m *Manager) Installed(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// List returns the installations ordered by name.
func (m *Manager) List() []Installation {
	m.mu.Lock()
	out := make([]Installation, 0, len(m.installs))
	for _, inst := range m.installs {
		out = append(out, inst)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Remove drops the record and deletes its root. The in-memory removal
// always happens; directory removal is best-effort.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	inst, ok := m.installs[name]
	delete(m.installs, name)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("no sandbox for %s", name)
	}
	events.Install.Removed(name)
	return os.RemoveAll(inst.Root)
}

// Shutdown removes every sandbox root, tolerating failures silently.
func (m *Manager) Shutdown() {
	for _, inst := range m.List() {
		if err := os.RemoveAll(inst.Root); err != nil {
			logging.Error(err)
		}
	}
	m.mu.Lock()
	m.installs = make(map[string]Installation)
	m.mu.Unlock()
}

func removeQuietly(path string) {
	if err := os.RemoveAll(path); err != nil {
		logging.Error(err)
	}
}
