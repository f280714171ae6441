package events

import "github.com/ratcrate/ratcrate-tui/internal/logging"

type JobTracer struct{}

var Job = JobTracer{}

func (JobTracer) Spawn(category string) {
	logging.Trace("job.spawn", map[string]interface{}{"category": category})
}

func (JobTracer) Rejected(category string) {
	logging.Trace("job.rejected", map[string]interface{}{"category": category})
}

func (JobTracer) Finished(category string) {
	logging.Trace("job.finished", map[string]interface{}{"category": category})
}

func (JobTracer) Disconnected(category string) {
	logging.Trace("job.disconnected", map[string]interface{}{"category": category})
}
