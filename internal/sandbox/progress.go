package sandbox

// Progress messages form a closed set: every install reports
// Starting → Downloading → Compiling → {Ready | Error}. The UI folds each
// drained message exactly once instead of tracking stage booleans.

// Starting announces that the install job has begun.
type Starting struct{}

func (Starting) Terminal() bool { return false }

// Downloading carries a synthetic download percentage (0–100,
// non-decreasing within the stage).
type Downloading struct {
	Percent int
}

func (Downloading) Terminal() bool { return false }

// Compiling carries a synthetic compile percentage (0–100, non-decreasing
// within the stage).
type Compiling struct {
	Percent int
}

func (Compiling) Terminal() bool { return false }

// Finished marks an install that completed without producing a sandbox
// record (not emitted by the manager today, but part of the message set).
type Finished struct{}

func (Finished) Terminal() bool { return true }

// Error reports a failed install. Reason carries the installer's stderr
// when available.
type Error struct {
	Reason string
}

func (Error) Terminal() bool { return true }

// Ready hands the finished Installation to the UI. Receipt transfers
// ownership of the record and its on-disk root.
type Ready struct {
	Install Installation
}

func (Ready) Terminal() bool { return true }
