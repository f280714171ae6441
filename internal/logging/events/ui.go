package events

import "github.com/ratcrate/ratcrate-tui/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) Cursor(pane string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"pane": pane, "cursor": cursor})
}

func (UITracer) Pane(pane string) {
	logging.Trace("ui.pane", map[string]interface{}{"pane": pane})
}

func (UITracer) Status(text string) {
	logging.Trace("ui.status", map[string]interface{}{"text": text})
}

func (FilterTracer) Changed(pane, filter string) {
	logging.Trace("filter.changed", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) Cleared(pane string) {
	logging.Trace("filter.clear", map[string]interface{}{"pane": pane})
}

func (CommandTracer) Entered(input string) {
	logging.Trace("command.entered", map[string]interface{}{"input": input})
}

func (CommandTracer) Unknown(input string) {
	logging.Trace("command.unknown", map[string]interface{}{"input": input})
}
