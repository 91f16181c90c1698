package grid

import "testing"

// place is a test helper that places and advances in one step, the way
// the compiler drives the cursor.
func place(c *Cursor, w, h, margin int) Rect {
	r := c.Place(w, h, margin)
	c.Advance(r)
	return r
}

func TestFlowPlacement(t *testing.T) {
	var c Cursor

	want := []Rect{
		{X: 0, Y: 0, W: 6, H: 8},
		{X: 6, Y: 0, W: 6, H: 8},
		{X: 12, Y: 0, W: 6, H: 8},
	}
	for i, w := range want {
		if got := place(&c, 6, 8, 0); got != w {
			t.Errorf("panel %d placed at %+v, want %+v", i, got, w)
		}
	}
}

func TestWrap(t *testing.T) {
	var c Cursor

	first := place(&c, 12, 8, 0)
	second := place(&c, 12, 8, 0)
	third := place(&c, 12, 8, 0)

	if first != (Rect{X: 0, Y: 0, W: 12, H: 8}) {
		t.Errorf("first = %+v", first)
	}
	if second != (Rect{X: 12, Y: 0, W: 12, H: 8}) {
		t.Errorf("second = %+v", second)
	}
	if third != (Rect{X: 0, Y: 8, W: 12, H: 8}) {
		t.Errorf("third should wrap below the first row, got %+v", third)
	}
}

func TestWrapTargetIsTallestBottomEdge(t *testing.T) {
	var c Cursor

	place(&c, 12, 4, 0)
	place(&c, 12, 10, 0)
	wrapped := place(&c, 6, 8, 0)

	if wrapped.Y != 10 {
		t.Errorf("wrap should continue at the tallest bottom edge, got y=%d", wrapped.Y)
	}
	if wrapped.X != 0 {
		t.Errorf("wrap should reset x to the left inset, got x=%d", wrapped.X)
	}
}

func TestMarginLeft(t *testing.T) {
	var c Cursor

	first := place(&c, 10, 8, 2)
	if first != (Rect{X: 2, Y: 0, W: 10, H: 8}) {
		t.Errorf("margin should offset placement, got %+v", first)
	}

	second := place(&c, 10, 8, 2)
	if second.X != 14 {
		t.Errorf("second panel should start after margin gap, got x=%d", second.X)
	}
}

func TestMarginTriggersWrap(t *testing.T) {
	var c Cursor

	place(&c, 12, 8, 0)
	// 12 + 2 + 11 > 24: the margin itself pushes the panel over the bound.
	wrapped := place(&c, 11, 8, 2)
	if wrapped.Y != 8 || wrapped.X != 2 {
		t.Errorf("expected wrap to (2,8), got %+v", wrapped)
	}
}

func TestRowPadding(t *testing.T) {
	var c Cursor

	header := c.StartRow(2, 2)
	if header != (Rect{X: 0, Y: 0, W: 24, H: 1}) {
		t.Errorf("row header = %+v", header)
	}

	first := place(&c, 10, 8, 0)
	second := place(&c, 10, 8, 0)
	third := place(&c, 10, 8, 0)

	if first != (Rect{X: 2, Y: 1, W: 10, H: 8}) {
		t.Errorf("first = %+v", first)
	}
	if second != (Rect{X: 12, Y: 1, W: 10, H: 8}) {
		t.Errorf("second = %+v", second)
	}
	if third != (Rect{X: 2, Y: 9, W: 10, H: 8}) {
		t.Errorf("third should wrap to padded left edge below the row, got %+v", third)
	}
}

func TestRowPaddingDoesNotLeak(t *testing.T) {
	var c Cursor

	c.StartRow(4, 4)
	place(&c, 8, 8, 0)
	c.EndRow()

	after := place(&c, 12, 8, 0)
	if after.X != 0 {
		t.Errorf("sibling after row should see zero padding, got x=%d", after.X)
	}
	if after.Y != 9 {
		t.Errorf("sibling after row should start below it, got y=%d", after.Y)
	}
	if c.PadLeft != 0 || c.PadRight != 0 {
		t.Errorf("padding leaked past the row: %+v", c)
	}
}

func TestRowFinalizesInProgressRun(t *testing.T) {
	var c Cursor

	place(&c, 6, 8, 0)
	header := c.StartRow(0, 0)
	if header.Y != 8 {
		t.Errorf("row header should start below the open run, got y=%d", header.Y)
	}
}

func TestContainerLocalFlowAndTranslate(t *testing.T) {
	var c Cursor

	place(&c, 6, 4, 0)
	f := c.EnterContainer(10)

	first := place(&c, 5, 3, 0)
	second := place(&c, 5, 3, 0)
	third := place(&c, 5, 3, 0)

	if first != (Rect{X: 0, Y: 0, W: 5, H: 3}) || second != (Rect{X: 5, Y: 0, W: 5, H: 3}) {
		t.Errorf("container children should flow locally: %+v, %+v", first, second)
	}
	if third != (Rect{X: 0, Y: 3, W: 5, H: 3}) {
		t.Errorf("third child should wrap inside the container width, got %+v", third)
	}

	if got := f.Translate(third); got != (Rect{X: 6, Y: 3, W: 5, H: 3}) {
		t.Errorf("translated = %+v", got)
	}

	c.ExitContainer(f)
	if c.X != 16 {
		t.Errorf("cursor should advance past the container, got x=%d", c.X)
	}
	if c.RowMaxY != 6 {
		t.Errorf("container height should back-propagate, rowMaxY=%d", c.RowMaxY)
	}
}

func TestContainerDerivedHeightVsSiblings(t *testing.T) {
	var c Cursor

	place(&c, 6, 10, 0)
	f := c.EnterContainer(8)
	place(&c, 8, 4, 0)
	c.ExitContainer(f)

	if c.RowMaxY != 10 {
		t.Errorf("taller sibling should win the run bottom edge, rowMaxY=%d", c.RowMaxY)
	}
}

func TestFillWidth(t *testing.T) {
	var c Cursor

	place(&c, 10, 8, 0)
	if got := c.FillWidth(); got != 14 {
		t.Errorf("FillWidth() = %d, want 14", got)
	}

	c = Cursor{}
	c.StartRow(0, 3)
	if got := c.FillWidth(); got != 21 {
		t.Errorf("FillWidth() inside padded row = %d, want 21", got)
	}
}

func TestGridInvariant(t *testing.T) {
	var c Cursor

	widths := []int{7, 9, 5, 11, 3, 12, 24, 6, 6, 6, 6, 6}
	for i, w := range widths {
		r := place(&c, w, 8, 0)
		if r.X < 0 || r.X+r.W > Width {
			t.Errorf("panel %d violates the grid bound: %+v", i, r)
		}
		if r.W <= 0 || r.H <= 0 {
			t.Errorf("panel %d has a degenerate size: %+v", i, r)
		}
	}
}
