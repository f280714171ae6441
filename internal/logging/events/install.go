package events

import "github.com/ratcrate/ratcrate-tui/internal/logging"

type InstallTracer struct{}

var Install = InstallTracer{}

func (InstallTracer) Start(name string) {
	logging.Trace("install.start", map[string]interface{}{"package": name})
}

func (InstallTracer) Failure(name, reason string) {
	logging.Trace("install.failure", map[string]interface{}{"package": name, "reason": reason})
}

func (InstallTracer) Ready(name, binary string) {
	logging.Trace("install.ready", map[string]interface{}{"package": name, "binary": binary})
}

func (InstallTracer) Removed(name string) {
	logging.Trace("install.removed", map[string]interface{}{"package": name})
}
