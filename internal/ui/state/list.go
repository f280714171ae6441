// Package state holds list navigation state for the UI: cursor, viewport
// offset, and fuzzy filtering over the current result snapshot.
package state

import "strings"

// Item is a selectable list entry. ID is the package or repository
// identity; Label is the rendered text used for filtering.
type Item struct {
	ID    string
	Label string
}

// List tracks the visible items for one results pane.
type List struct {
	Full   []Item
	Items  []Item
	Filter string
	Cursor int
	Offset int
}

// NewList constructs a list over the provided items.
func NewList(items []Item) *List {
	l := &List{}
	l.SetItems(items)
	return l
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// SetItems replaces the full item set, reapplying any active filter and
// clamping the cursor.
func (l *List) SetItems(items []Item) {
	l.Full = CloneItems(items)
	l.applyFilter()
}

// SetFilter updates the filter query and resets the cursor to the best
// match.
func (l *List) SetFilter(query string) {
	l.Filter = query
	l.applyFilter()
	if strings.TrimSpace(query) != "" {
		l.Cursor = 0
		l.Offset = 0
	}
}

// ClearFilter removes any active filter.
func (l *List) ClearFilter() {
	l.Filter = ""
	l.applyFilter()
}

func (l *List) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.Offset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.Offset > len(l.Items)-1 {
		l.Offset = 0
	}
}

// Selected returns the item under the cursor.
func (l *List) Selected() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// MoveCursor moves the cursor by delta, clamping at both ends.
func (l *List) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// SyncViewport scrolls the viewport so the cursor stays visible within
// maxVisible rows.
func (l *List) SyncViewport(maxVisible int) {
	if maxVisible <= 0 || len(l.Items) == 0 {
		l.Offset = 0
		return
	}
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+maxVisible {
		l.Offset = l.Cursor - maxVisible + 1
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}

// Visible returns the window of items currently in the viewport.
func (l *List) Visible(maxVisible int) []Item {
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items
	}
	end := l.Offset + maxVisible
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.Offset:end]
}
