// Package nav implements a wrap-around selection cursor over an ordered
// sequence the cursor does not own. The cursor only tracks the selected
// index and the sequence length; callers index into their own slice with
// the value returned by Selected.
package nav

// Cursor is an optional selected index into a sequence of Len items.
//
// When a selection exists it always satisfies 0 <= i < Len. Movement wraps
// only when the cursor sits exactly on a boundary: a step that would run past
// the end stops on the last item, and the next step from there wraps to the
// first (and symmetrically for Previous). Every operation is a no-op on an
// empty sequence.
//
// The zero value is an unselected cursor over an empty sequence.
type Cursor struct {
	n        int
	selected int
	ok       bool
}

// New returns an unselected cursor over n items.
func New(n int) Cursor {
	if n < 0 {
		n = 0
	}
	return Cursor{n: n}
}

// Len returns the length of the sequence the cursor moves over.
func (c Cursor) Len() int { return c.n }

// Selected returns the selected index and true, or (0, false) when nothing
// is selected.
func (c Cursor) Selected() (int, bool) {
	if !c.ok {
		return 0, false
	}
	return c.selected, true
}

// IsSelected reports whether i is the selected index.
func (c Cursor) IsSelected(i int) bool {
	return c.ok && c.selected == i
}

// SetLen changes the sequence length. A selection that no longer fits is
// dropped.
func (c *Cursor) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if c.ok && c.selected >= n {
		c.ok = false
		c.selected = 0
	}
}

// Next moves the selection forward by step. With no selection it selects
// the first item; on the last item it wraps to the first.
func (c *Cursor) Next(step int) {
	if c.n == 0 {
		return
	}
	if step < 1 {
		step = 1
	}
	switch {
	case !c.ok:
		c.set(0)
	case c.selected >= c.n-1:
		c.set(0)
	default:
		c.set(min(c.selected+step, c.n-1))
	}
}

// Previous moves the selection back by step. With no selection it selects
// the first item; on the first item it wraps to the last.
func (c *Cursor) Previous(step int) {
	if c.n == 0 {
		return
	}
	if step < 1 {
		step = 1
	}
	switch {
	case !c.ok:
		c.set(0)
	case c.selected == 0:
		c.set(c.n - 1)
	default:
		c.set(max(c.selected-step, 0))
	}
}

// Select selects index i. It reports false and leaves the cursor unchanged
// when i is outside [0, Len).
func (c *Cursor) Select(i int) bool {
	if i < 0 || i >= c.n {
		return false
	}
	c.set(i)
	return true
}

// Unselect clears the selection.
func (c *Cursor) Unselect() {
	c.ok = false
	c.selected = 0
}

// ToFirst selects the first item.
func (c *Cursor) ToFirst() {
	if c.n == 0 {
		return
	}
	c.set(0)
}

// ToLast selects the last item.
func (c *Cursor) ToLast() {
	if c.n == 0 {
		return
	}
	c.set(c.n - 1)
}

func (c *Cursor) set(i int) {
	c.selected = i
	c.ok = true
}
