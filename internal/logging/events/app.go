package events

import "github.com/ratcrate/ratcrate-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Shutdown(sandboxes int) {
	logging.Trace("app.shutdown", map[string]interface{}{"sandboxes": sandboxes})
}

func (AppTracer) CacheHit(path string, packages int) {
	logging.Trace("app.cache-hit", map[string]interface{}{"path": path, "packages": packages})
}

func (AppTracer) CacheMiss(path string) {
	logging.Trace("app.cache-miss", map[string]interface{}{"path": path})
}
