package events

import "github.com/ratcrate/ratcrate-tui/internal/logging"

type ExecTracer struct{}

var Exec = ExecTracer{}

func (ExecTracer) Run(name, binary string) {
	logging.Trace("exec.run", map[string]interface{}{"package": name, "binary": binary})
}

func (ExecTracer) Done(name string, err error) {
	payload := map[string]interface{}{"package": name}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("exec.done", payload)
}
