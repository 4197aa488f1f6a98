package ui

// historySize bounds the remembered input lines.
const historySize = 50

// LineEditor is a single-line input buffer with a cursor and history.
type LineEditor struct {
	buf     []rune
	cursor  int
	history []string
	recall  int // index into history while browsing; len(history) when not
}

// NewLineEditor returns an empty editor.
func NewLineEditor() *LineEditor {
	return &LineEditor{}
}

// Text returns the current line.
func (e *LineEditor) Text() string { return string(e.buf) }

// Cursor returns the cursor column within the line.
func (e *LineEditor) Cursor() int { return e.cursor }

// Insert types a rune at the cursor.
func (e *LineEditor) Insert(r rune) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
}

// Backspace deletes the rune before the cursor.
func (e *LineEditor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
}

// Delete removes the rune under the cursor.
func (e *LineEditor) Delete() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
}

// Left moves the cursor one rune left.
func (e *LineEditor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// Right moves the cursor one rune right.
func (e *LineEditor) Right() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
}

// Home and End jump to the ends of the line.
func (e *LineEditor) Home() { e.cursor = 0 }
func (e *LineEditor) End()  { e.cursor = len(e.buf) }

// Take returns the line, clears the buffer and remembers non-empty lines.
func (e *LineEditor) Take() string {
	line := string(e.buf)
	e.set("")
	if line != "" {
		if len(e.history) == historySize {
			e.history = e.history[1:]
		}
		e.history = append(e.history, line)
	}
	e.recall = len(e.history)
	return line
}

// Prev recalls the previous history line.
func (e *LineEditor) Prev() {
	if e.recall == 0 {
		return
	}
	e.recall--
	e.set(e.history[e.recall])
}

// Next recalls the next history line, or clears past the newest.
func (e *LineEditor) Next() {
	if e.recall >= len(e.history) {
		return
	}
	e.recall++
	if e.recall == len(e.history) {
		e.set("")
		return
	}
	e.set(e.history[e.recall])
}

func (e *LineEditor) set(s string) {
	e.buf = []rune(s)
	e.cursor = len(e.buf)
}
