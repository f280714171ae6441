package events

import "github.com/ratcrate/ratcrate-tui/internal/logging"

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Primary(query string, count, total int) {
	logging.Trace("fetch.primary", map[string]interface{}{
		"query": query,
		"count": count,
		"total": total,
	})
}

func (FetchTracer) Secondary(query string, count, total int) {
	logging.Trace("fetch.secondary", map[string]interface{}{
		"query": query,
		"count": count,
		"total": total,
	})
}

func (FetchTracer) Error(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("fetch.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}
