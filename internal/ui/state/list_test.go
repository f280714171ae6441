package state

import "testing"

func sampleItems() []Item {
	return []Item{
		{ID: "ratatui", Label: "ratatui  terminal UI library"},
		{ID: "crossterm", Label: "crossterm  cross platform terminal handling"},
		{ID: "tui", Label: "tui  predecessor library"},
		{ID: "bat", Label: "bat  a cat clone with wings"},
	}
}

func TestSetItemsClampsCursor(t *testing.T) {
	l := NewList(sampleItems())
	l.Cursor = 3
	l.SetItems(sampleItems()[:2])
	if l.Cursor != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", l.Cursor)
	}
	l.SetItems(nil)
	if l.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0 for empty list", l.Cursor)
	}
	if _, ok := l.Selected(); ok {
		t.Fatalf("Selected must report false on empty list")
	}
}

func TestMoveCursorClampsAtBothEnds(t *testing.T) {
	l := NewList(sampleItems())
	if l.MoveCursor(-1) {
		t.Fatalf("moving above the first item should not report a change")
	}
	if !l.MoveCursor(10) {
		t.Fatalf("large delta should still move the cursor")
	}
	if l.Cursor != 3 {
		t.Fatalf("cursor = %d, want clamped to last item", l.Cursor)
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("MoveCursorHome did not reach the first item")
	}
	if !l.MoveCursorEnd() || l.Cursor != 3 {
		t.Fatalf("MoveCursorEnd did not reach the last item")
	}
}

func TestSetFilterNarrowsAndResetsCursor(t *testing.T) {
	l := NewList(sampleItems())
	l.Cursor = 3
	l.SetFilter("terminal")
	if len(l.Items) != 2 {
		t.Fatalf("filter matched %d items, want 2: %+v", len(l.Items), l.Items)
	}
	if l.Cursor != 0 {
		t.Fatalf("cursor = %d, want reset to 0 after filtering", l.Cursor)
	}
	sel, ok := l.Selected()
	if !ok || sel.ID != "ratatui" {
		t.Fatalf("selected = %+v, want ratatui", sel)
	}
	l.ClearFilter()
	if len(l.Items) != 4 {
		t.Fatalf("ClearFilter should restore the full set, got %d items", len(l.Items))
	}
}

func TestFilterSurvivesSetItems(t *testing.T) {
	l := NewList(sampleItems())
	l.SetFilter("library")
	l.SetItems(sampleItems())
	if len(l.Items) != 2 {
		t.Fatalf("active filter should reapply after SetItems, got %d items", len(l.Items))
	}
}

func TestSyncViewportKeepsCursorVisible(t *testing.T) {
	l := NewList(sampleItems())
	l.Cursor = 3
	l.SyncViewport(2)
	if l.Offset != 2 {
		t.Fatalf("offset = %d, want 2", l.Offset)
	}
	visible := l.Visible(2)
	if len(visible) != 2 || visible[1].ID != "bat" {
		t.Fatalf("unexpected visible window %+v", visible)
	}
	l.Cursor = 0
	l.SyncViewport(2)
	if l.Offset != 0 {
		t.Fatalf("offset = %d, want scrolled back to 0", l.Offset)
	}
}

func TestFilterItemsSubstringFallback(t *testing.T) {
	items := sampleItems()
	got := FilterItems(items, "cat clone")
	if len(got) != 1 || got[0].ID != "bat" {
		t.Fatalf("substring fallback failed: %+v", got)
	}
	if got := FilterItems(items, "  "); len(got) != len(items) {
		t.Fatalf("blank query should return everything, got %d", len(got))
	}
	if got := FilterItems(items, "zzzz"); len(got) != 0 {
		t.Fatalf("impossible query should match nothing, got %+v", got)
	}
}
