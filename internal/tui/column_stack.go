package tui

import (
	"github.com/mmcdole/marquee/internal/tui/components"
)

// ColumnStack manages the drill-down columns to the right of the sidebar.
// The root is the active source's movie page; drilling in pushes a cast
// column, then a cast member's movies, and so on.
//
//	Source:  [Sources | Popular Movies | Inspector]
//	Cast:    [Popular Movies | Cast: Heat | Inspector]
//	Person:  [Cast: Heat | Al Pacino | Inspector]
//
// The top of the stack is the focused column unless the sidebar has focus.
type ColumnStack struct {
	columns     []*components.ListColumn
	cursorStack []int // Saved cursor positions for back navigation
}

// NewColumnStack creates a new empty column stack
func NewColumnStack() *ColumnStack {
	return &ColumnStack{}
}

// Len returns the number of columns in the stack
func (cs *ColumnStack) Len() int {
	return len(cs.columns)
}

// Get returns the column at the given index (0 = root)
func (cs *ColumnStack) Get(idx int) *components.ListColumn {
	if idx < 0 || idx >= len(cs.columns) {
		return nil
	}
	return cs.columns[idx]
}

// Root returns the source column, or nil when the stack is empty
func (cs *ColumnStack) Root() *components.ListColumn {
	return cs.Get(0)
}

// Top returns the topmost column
func (cs *ColumnStack) Top() *components.ListColumn {
	if len(cs.columns) == 0 {
		return nil
	}
	return cs.columns[len(cs.columns)-1]
}

// Push adds a new column to the stack, saving the current cursor position
func (cs *ColumnStack) Push(col *components.ListColumn, saveCursor int) {
	cs.cursorStack = append(cs.cursorStack, saveCursor)

	if top := cs.Top(); top != nil {
		top.SetFocused(false)
	}

	col.SetFocused(true)
	cs.columns = append(cs.columns, col)
}

// Pop removes and returns the top column, along with the saved cursor position.
// The root column is never popped.
func (cs *ColumnStack) Pop() (*components.ListColumn, int) {
	if len(cs.columns) <= 1 {
		return nil, 0
	}

	popped := cs.columns[len(cs.columns)-1]
	popped.SetFocused(false)
	cs.columns = cs.columns[:len(cs.columns)-1]

	savedCursor := 0
	if len(cs.cursorStack) > 0 {
		savedCursor = cs.cursorStack[len(cs.cursorStack)-1]
		cs.cursorStack = cs.cursorStack[:len(cs.cursorStack)-1]
	}

	if top := cs.Top(); top != nil {
		top.SetFocused(true)
		top.SetSelectedIndex(savedCursor)
	}

	return popped, savedCursor
}

// Reset resets the stack to a single root column (used when switching sources)
func (cs *ColumnStack) Reset(col *components.ListColumn) {
	for _, c := range cs.columns {
		c.SetFocused(false)
	}
	col.SetFocused(true)
	cs.columns = []*components.ListColumn{col}
	cs.cursorStack = nil
}

// Parent returns the column under the top, or nil at the root
func (cs *ColumnStack) Parent() *components.ListColumn {
	if len(cs.columns) < 2 {
		return nil
	}
	return cs.columns[len(cs.columns)-2]
}

// CanGoBack returns true if we can navigate back (not at root)
func (cs *ColumnStack) CanGoBack() bool {
	return len(cs.columns) > 1
}

// SetFocused focuses or blurs the top column
func (cs *ColumnStack) SetFocused(focused bool) {
	if top := cs.Top(); top != nil {
		top.SetFocused(focused)
	}
}

// UpdateSpinnerFrame updates the spinner frame for all columns
func (cs *ColumnStack) UpdateSpinnerFrame(frame int) {
	for _, col := range cs.columns {
		col.SetSpinnerFrame(frame)
	}
}
