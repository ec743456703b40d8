package catalog

import "testing"

func TestPageStateClamp(t *testing.T) {
	ps := NewPageState()
	if ps.Page != 1 {
		t.Fatalf("expected fresh state on page 1, got %d", ps.Page)
	}

	ps.SetPage(0)
	if ps.Page != 1 {
		t.Fatalf("page 0 should clamp to 1, got %d", ps.Page)
	}
	ps.SetPage(-5)
	if ps.Page != 1 {
		t.Fatalf("page -5 should clamp to 1, got %d", ps.Page)
	}

	// No bound known yet: any positive page is accepted.
	ps.SetPage(999)
	if ps.Page != 999 {
		t.Fatalf("unbounded page should stick, got %d", ps.Page)
	}

	// The fetch reports the real bound and the page re-clamps.
	ps.SetTotal(42)
	if ps.Page != 42 {
		t.Fatalf("page should clamp to total 42, got %d", ps.Page)
	}
	ps.SetPage(50)
	if ps.Page != 42 {
		t.Fatalf("page beyond bound should clamp, got %d", ps.Page)
	}
}

func TestPageStateNextPrev(t *testing.T) {
	ps := NewPageState()
	ps.SetTotal(3)
	ps.Next()
	ps.Next()
	ps.Next() // clamped at 3
	if ps.Page != 3 {
		t.Fatalf("expected page 3, got %d", ps.Page)
	}
	ps.Prev()
	ps.Prev()
	ps.Prev() // clamped at 1
	if ps.Page != 1 {
		t.Fatalf("expected page 1, got %d", ps.Page)
	}
}

func TestPageStateReset(t *testing.T) {
	ps := NewPageState()
	ps.SetTotal(10)
	ps.SetPage(7)
	ps.Reset()
	if ps.Page != 1 {
		t.Fatalf("reset should return to page 1, got %d", ps.Page)
	}
	if ps.TotalPages != 10 {
		t.Fatalf("reset should keep the bound, got %d", ps.TotalPages)
	}
}

func TestPageStateZeroTotal(t *testing.T) {
	ps := NewPageState()
	ps.SetTotal(0)
	ps.SetPage(5)
	if ps.Page != 5 {
		t.Fatalf("zero total means no upper bound, got %d", ps.Page)
	}
	ps.SetTotal(-3)
	if ps.TotalPages != 0 {
		t.Fatalf("negative totals normalize to 0, got %d", ps.TotalPages)
	}
}
