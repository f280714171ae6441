package ui

import (
	"time"

	"github.com/ratcrate/ratcrate-tui/internal/registry"
)

// tickMsg drives the drain/redraw cadence of the loop.
type tickMsg time.Time

// primaryResult is the terminal message of a primary fetch job: either a
// replacement snapshot or an error, never both.
type primaryResult struct {
	snap registry.Snapshot
	err  error
}

func (primaryResult) Terminal() bool { return true }

// secondaryResult is the terminal message of a secondary index fetch job.
type secondaryResult struct {
	snap registry.RepoSnapshot
	err  error
}

func (secondaryResult) Terminal() bool { return true }

// execFinishedMsg reports the outcome of a synchronous binary run after the
// terminal has been restored.
type execFinishedMsg struct {
	name string
	err  error
}
