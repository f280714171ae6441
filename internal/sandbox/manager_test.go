package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/ratcrate/ratcrate-tui/internal/jobs"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("installer stubs require a POSIX shell")
	}
}

// writeInstaller creates a stub installer script. The manager invokes it
// as `<script> install <name>` with CARGO_HOME pointing at the sandbox.
func writeInstaller(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-cargo")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write installer stub: %v", err)
	}
	return path
}

func runTask(t *testing.T, task jobs.Task) []jobs.Msg {
	t.Helper()
	var msgs []jobs.Msg
	done := make(chan struct{})
	go func() {
		defer close(done)
		task(func(m jobs.Msg) { msgs = append(msgs, m) })
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("install task did not finish")
	}
	return msgs
}

func TestInstallSuccessEmitsFullSequence(t *testing.T) {
	requirePosixShell(t)
	installer := writeInstaller(t, `printf '#!/bin/sh\nexit 0\n' > "$CARGO_HOME/bin/$2"
chmod +x "$CARGO_HOME/bin/$2"`)
	m := NewManager(WithCommand(installer), WithTempBase(t.TempDir()))

	task, err := m.Begin("widget")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	msgs := runTask(t, task)

	if len(msgs) < 4 {
		t.Fatalf("expected at least 4 messages, got %#v", msgs)
	}
	if _, ok := msgs[0].(Starting); !ok {
		t.Fatalf("expected Starting first, got %#v", msgs[0])
	}
	lastDownload := -1
	lastCompile := -1
	var ready *Ready
	for i, msg := range msgs[1:] {
		switch p := msg.(type) {
		case Downloading:
			if lastCompile >= 0 {
				t.Fatalf("Downloading after Compiling at message %d", i+1)
			}
			if p.Percent < lastDownload {
				t.Fatalf("download percent decreased: %d after %d", p.Percent, lastDownload)
			}
			if p.Percent < 0 || p.Percent > 100 {
				t.Fatalf("download percent out of range: %d", p.Percent)
			}
			lastDownload = p.Percent
		case Compiling:
			if p.Percent < lastCompile {
				t.Fatalf("compile percent decreased: %d after %d", p.Percent, lastCompile)
			}
			if p.Percent < 0 || p.Percent > 100 {
				t.Fatalf("compile percent out of range: %d", p.Percent)
			}
			lastCompile = p.Percent
		case Ready:
			if i+1 != len(msgs)-1 {
				t.Fatalf("Ready must be the final message")
			}
			r := p
			ready = &r
		default:
			t.Fatalf("unexpected message %#v", msg)
		}
	}
	if ready == nil {
		t.Fatalf("no Ready message emitted: %#v", msgs)
	}
	inst := ready.Install
	if inst.Name != "widget" {
		t.Fatalf("unexpected install name %q", inst.Name)
	}
	if !strings.HasPrefix(inst.CargoHome, inst.Root) {
		t.Fatalf("cargo home %q not under root %q", inst.CargoHome, inst.Root)
	}
	if !strings.HasPrefix(inst.Binary, inst.Root) {
		t.Fatalf("binary %q not under root %q", inst.Binary, inst.Root)
	}
	if filepath.Base(inst.Binary) != "widget" {
		t.Fatalf("expected conventional binary path, got %q", inst.Binary)
	}

	m.Adopt(inst)
	if !m.Installed("widget") {
		t.Fatalf("installation not recorded after Adopt")
	}
}

func TestInstallFailureCarriesStderr(t *testing.T) {
	requirePosixShell(t)
	installer := writeInstaller(t, `echo "permission denied" >&2
exit 1`)
	m := NewManager(WithCommand(installer), WithTempBase(t.TempDir()))

	task, err := m.Begin("widget")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	msgs := runTask(t, task)

	errCount := 0
	var reason string
	for _, msg := range msgs {
		if e, ok := msg.(Error); ok {
			errCount++
			reason = e.Reason
		}
		if _, ok := msg.(Ready); ok {
			t.Fatalf("Ready emitted for failing install")
		}
	}
	if errCount != 1 {
		t.Fatalf("expected exactly one Error message, got %d", errCount)
	}
	if !strings.Contains(reason, "permission denied") {
		t.Fatalf("expected stderr in reason, got %q", reason)
	}
	if len(m.List()) != 0 {
		t.Fatalf("sandbox set must stay empty after failure")
	}
}

func TestResolveBinaryFallsBackToFirstRegularFile(t *testing.T) {
	requirePosixShell(t)
	installer := writeInstaller(t, `printf '#!/bin/sh\nexit 0\n' > "$CARGO_HOME/bin/other-tool"
chmod +x "$CARGO_HOME/bin/other-tool"`)
	m := NewManager(WithCommand(installer), WithTempBase(t.TempDir()))

	task, err := m.Begin("widget")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	msgs := runTask(t, task)
	ready, ok := msgs[len(msgs)-1].(Ready)
	if !ok {
		t.Fatalf("expected Ready, got %#v", msgs[len(msgs)-1])
	}
	if filepath.Base(ready.Install.Binary) != "other-tool" {
		t.Fatalf("expected fallback binary other-tool, got %q", ready.Install.Binary)
	}
}

func TestInstallWithoutBinaryFails(t *testing.T) {
	requirePosixShell(t)
	installer := writeInstaller(t, `exit 0`)
	m := NewManager(WithCommand(installer), WithTempBase(t.TempDir()))

	task, err := m.Begin("widget")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	msgs := runTask(t, task)
	e, ok := msgs[len(msgs)-1].(Error)
	if !ok {
		t.Fatalf("expected Error, got %#v", msgs[len(msgs)-1])
	}
	if e.Reason != "no binary found" {
		t.Fatalf("unexpected reason %q", e.Reason)
	}
}

func TestBeginRejectsExistingInstallation(t *testing.T) {
	m := NewManager()
	m.Adopt(Installation{Name: "widget", Root: filepath.Join(t.TempDir(), "root")})
	if _, err := m.Begin("widget"); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}
}

func TestDuplicateInFlightInstallSpawnsOneSubprocess(t *testing.T) {
	requirePosixShell(t)
	countFile := filepath.Join(t.TempDir(), "count")
	installer := writeInstaller(t, `echo run >> "`+countFile+`"
printf '#!/bin/sh\nexit 0\n' > "$CARGO_HOME/bin/$2"
chmod +x "$CARGO_HOME/bin/$2"`)
	m := NewManager(WithCommand(installer), WithTempBase(t.TempDir()))
	bus := jobs.New()

	task, err := m.Begin("widget")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := bus.Spawn(jobs.Install, task); err != nil {
		t.Fatalf("first spawn failed: %v", err)
	}

	// Second request while the first is in flight: Begin passes (no record
	// yet) but the bus guard rejects synchronously.
	second, err := m.Begin("widget")
	if err != nil {
		t.Fatalf("second Begin should pass before adoption: %v", err)
	}
	if err := bus.Spawn(jobs.Install, second); !errors.Is(err, jobs.ErrBusy) {
		t.Fatalf("expected ErrBusy for in-flight duplicate, got %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if msg, ok := bus.Drain(jobs.Install); ok {
			if ready, isReady := msg.(Ready); isReady {
				m.Adopt(ready.Install)
				break
			}
			if e, isErr := msg.(Error); isErr {
				t.Fatalf("install failed: %s", e.Reason)
			}
		} else {
			time.Sleep(5 * time.Millisecond)
		}
	}
	if !m.Installed("widget") {
		t.Fatalf("install did not complete")
	}
	data, err := os.ReadFile(countFile)
	if err != nil {
		t.Fatalf("read count file: %v", err)
	}
	if runs := strings.Count(string(data), "run"); runs != 1 {
		t.Fatalf("expected exactly one installer invocation, got %d", runs)
	}
}

func TestRemoveDeletesSandboxRoot(t *testing.T) {
	m := NewManager()
	root := filepath.Join(t.TempDir(), "sandbox-root")
	if err := os.MkdirAll(filepath.Join(root, "cargo-home", "bin"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	m.Adopt(Installation{Name: "widget", Root: root})
	if err := m.Remove("widget"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("expected root to be removed, stat err %v", err)
	}
	if m.Installed("widget") {
		t.Fatalf("record should be gone after Remove")
	}
	if err := m.Remove("widget"); err == nil {
		t.Fatalf("expected error removing unknown sandbox")
	}
}

func TestShutdownRemovesAllRoots(t *testing.T) {
	m := NewManager()
	base := t.TempDir()
	for _, name := range []string{"one", "two"} {
		root := filepath.Join(base, name)
		if err := os.MkdirAll(root, 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		m.Adopt(Installation{Name: name, Root: root})
	}
	m.Shutdown()
	for _, name := range []string{"one", "two"} {
		if _, err := os.Stat(filepath.Join(base, name)); !os.IsNotExist(err) {
			t.Fatalf("expected %s root removed", name)
		}
	}
	if len(m.List()) != 0 {
		t.Fatalf("expected empty installation set after Shutdown")
	}
}
