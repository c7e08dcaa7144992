package logscan

// Cursor is the ordinal of the last line already consumed by a confirmed
// match. The zero value starts before the first line. A Cursor belongs to one
// scanning session over one file and is not safe for concurrent use.
type Cursor struct {
	line int
}

// NewCursor returns a cursor positioned before the first line
func NewCursor() *Cursor {
	return &Cursor{}
}

// CursorAt returns a cursor that treats lines up to and including line as
// already consumed. Negative values start before the first line.
func CursorAt(line int) *Cursor {
	c := &Cursor{}
	c.advance(line)
	return c
}

// Line returns the ordinal of the last consumed line, 0 if none
func (c *Cursor) Line() int {
	return c.line
}

// advance moves the cursor forward to line. It never moves backwards.
func (c *Cursor) advance(line int) {
	if line > c.line {
		c.line = line
	}
}
