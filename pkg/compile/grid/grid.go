// Package grid implements the cursor-based placement engine for the
// 24-unit dashboard grid.
//
// A [Cursor] tracks the next placement point while the compiler walks the
// tree in document order. Panels flow left to right and wrap when they
// would cross the horizontal bound in effect; rows reset the flow and
// install padding insets; containers open a nested sub-grid whose records
// are translated back into the parent coordinate space on exit.
//
// The cursor holds no reference to emitted records: translation and width
// validation on container exit are driven by the caller, which owns the
// output list.
package grid

// Grid dimensions and built-in panel defaults, in grid units.
const (
	Width = 24

	DefaultPanelWidth  = 12
	DefaultPanelHeight = 8
	RowHeaderHeight    = 1
)

// Rect is a rectangle in grid units.
type Rect struct {
	X, Y, W, H int
}

// Cursor is the mutable layout state of one compile pass. The zero value
// is the document-start state.
type Cursor struct {
	X, Y int // next placement point

	// RowMaxY is the tallest bottom edge seen in the current horizontal
	// run; wrapping continues at this y.
	RowMaxY int

	// PadLeft and PadRight are the insets installed by the enclosing row.
	// They never leak past the owning row.
	PadLeft  int
	PadRight int
}

// Place computes the rectangle for a panel of the given size, wrapping to
// a new line when the panel would cross the horizontal bound in effect.
// The caller must follow up with [Cursor.Advance].
//
// Explicit absolute coordinates are honored by the compiler before Place
// is consulted: a panel declaring its own x/y bypasses flow placement
// entirely (and margin is ignored on that path).
func (c *Cursor) Place(width, height, marginLeft int) Rect {
	available := Width - c.PadLeft - c.PadRight
	if c.X-c.PadLeft+marginLeft+width > available {
		c.X = c.PadLeft
		c.Y = c.RowMaxY
	}
	return Rect{X: c.X + marginLeft, Y: c.Y, W: width, H: height}
}

// Advance moves the cursor past a placed rectangle. Only wrapping moves
// the y coordinate; Advance extends the current run.
func (c *Cursor) Advance(r Rect) {
	c.X = r.X + r.W
	if bottom := r.Y + r.H; bottom > c.RowMaxY {
		c.RowMaxY = bottom
	}
}

// StartRow finalizes any in-progress run, returns the full-width
// structural header rectangle, and installs the row's padding insets for
// the children that follow.
func (c *Cursor) StartRow(padLeft, padRight int) Rect {
	c.Y = c.RowMaxY
	c.X = 0
	c.PadLeft, c.PadRight = 0, 0

	header := Rect{X: 0, Y: c.Y, W: Width, H: RowHeaderHeight}
	c.Y += RowHeaderHeight
	c.RowMaxY = c.Y

	c.PadLeft, c.PadRight = padLeft, padRight
	c.X = padLeft
	return header
}

// EndRow closes the row: flow continues below the row's tallest child
// with zero padding. Siblings outside a row never see row padding.
func (c *Cursor) EndRow() {
	c.Y = c.RowMaxY
	c.X = 0
	c.PadLeft, c.PadRight = 0, 0
}

// Frame is the saved cursor state of an open container.
type Frame struct {
	Saved Cursor
	Width int
}

// EnterContainer opens a nested sub-grid of the given width at the current
// cursor position. Children lay out in local coordinates against a right
// inset of Width-containerWidth, reusing the ordinary wrap logic.
func (c *Cursor) EnterContainer(width int) Frame {
	f := Frame{Saved: *c, Width: width}
	c.X, c.Y, c.RowMaxY = 0, 0, 0
	c.PadLeft = 0
	c.PadRight = Width - width
	return f
}

// ExitContainer restores the outer cursor, advanced past the container.
// The container's height is derived from its children: the outer run
// extends to the saved y plus the deepest local bottom edge.
//
// Translation of the records produced inside the container is the
// caller's job; Translate gives the offset to apply.
func (c *Cursor) ExitContainer(f Frame) {
	childrenMaxY := c.RowMaxY
	*c = f.Saved
	c.X = f.Saved.X + f.Width
	if bottom := f.Saved.Y + childrenMaxY; bottom > c.RowMaxY {
		c.RowMaxY = bottom
	}
}

// Translate returns a copy of r shifted into the parent coordinate space
// of the container frame.
func (f Frame) Translate(r Rect) Rect {
	r.X += f.Saved.X
	r.Y += f.Saved.Y
	return r
}

// FillWidth returns the remaining width from the cursor to the right
// inset, used by containers declaring fill instead of a fixed width.
func (c *Cursor) FillWidth() int {
	return Width - c.PadRight - c.X
}
