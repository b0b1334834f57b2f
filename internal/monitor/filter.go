package monitor

// Filter is the process filter text with an explicit cursor. The cursor is a
// rune index in [0, Len()].
type Filter struct {
	runes  []rune
	cursor int
}

// String returns the filter text.
func (f *Filter) String() string {
	return string(f.runes)
}

// Len returns the number of runes in the filter.
func (f *Filter) Len() int {
	return len(f.runes)
}

// Cursor returns the cursor position.
func (f *Filter) Cursor() int {
	return f.cursor
}

// Empty reports whether the filter has no text.
func (f *Filter) Empty() bool {
	return len(f.runes) == 0
}

// Insert places r at the cursor and advances the cursor past it.
func (f *Filter) Insert(r rune) {
	f.runes = append(f.runes, 0)
	copy(f.runes[f.cursor+1:], f.runes[f.cursor:])
	f.runes[f.cursor] = r
	f.cursor++
}

// Backspace removes the rune before the cursor. It is a no-op at position 0.
func (f *Filter) Backspace() bool {
	if f.cursor == 0 {
		return false
	}
	f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
	f.cursor--
	return true
}

// Left moves the cursor one rune left.
func (f *Filter) Left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

// Right moves the cursor one rune right.
func (f *Filter) Right() {
	if f.cursor < len(f.runes) {
		f.cursor++
	}
}

// Home moves the cursor to the start.
func (f *Filter) Home() {
	f.cursor = 0
}

// End moves the cursor past the last rune.
func (f *Filter) End() {
	f.cursor = len(f.runes)
}

// Clear empties the filter.
func (f *Filter) Clear() {
	f.runes = f.runes[:0]
	f.cursor = 0
}

// Split returns the text before and after the cursor, for rendering.
func (f *Filter) Split() (before, after string) {
	return string(f.runes[:f.cursor]), string(f.runes[f.cursor:])
}
