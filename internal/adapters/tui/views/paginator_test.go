package views

import "testing"

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	if p.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages())
	}

	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("cursor %d page %d, want 4 and 2", p.Cursor(), p.CurrentPage())
	}
	if p.CursorInPage() != 1 {
		t.Errorf("CursorInPage = %d, want 1", p.CursorInPage())
	}

	if !p.NextPage() || p.Cursor() != 6 {
		t.Errorf("NextPage should land on 6, got %d", p.Cursor())
	}
	if p.NextPage() {
		t.Error("NextPage past the end should fail")
	}
	start, end := p.VisibleRange()
	if start != 6 || end != 7 {
		t.Errorf("VisibleRange = %d..%d, want 6..7", start, end)
	}

	if !p.PrevPage() || p.Cursor() != 3 {
		t.Errorf("PrevPage should land on 3, got %d", p.Cursor())
	}

	p.SetCursor(100)
	if p.Cursor() != 6 {
		t.Errorf("SetCursor should clamp to 6, got %d", p.Cursor())
	}

	p.SetPageSize(10)
	start, end = p.VisibleRange()
	if start != 0 || end != 7 {
		t.Errorf("after SetPageSize VisibleRange = %d..%d, want 0..7", start, end)
	}

	p.Reset()
	if p.Cursor() != 0 || p.TotalPages() != 1 {
		t.Error("Reset should clear cursor and total")
	}
}
