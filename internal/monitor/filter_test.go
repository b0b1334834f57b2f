package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_InsertAtCursor(t *testing.T) {
	var f Filter
	for _, r := range "tp" {
		f.Insert(r)
	}
	f.Left()
	f.Insert('o')

	assert.Equal(t, "top", f.String())
	assert.Equal(t, 2, f.Cursor())
}

func TestFilter_Backspace(t *testing.T) {
	var f Filter
	assert.False(t, f.Backspace(), "empty filter")

	for _, r := range "top" {
		f.Insert(r)
	}
	assert.True(t, f.Backspace())
	assert.Equal(t, "to", f.String())

	f.Home()
	assert.False(t, f.Backspace())
	assert.Equal(t, "to", f.String())

	f.Right()
	assert.True(t, f.Backspace())
	assert.Equal(t, "o", f.String())
	assert.Equal(t, 0, f.Cursor())
}

func TestFilter_CursorBounds(t *testing.T) {
	var f Filter
	f.Left()
	assert.Equal(t, 0, f.Cursor())

	f.Insert('a')
	f.Right()
	f.Right()
	assert.Equal(t, 1, f.Cursor())
}

func TestFilter_Multibyte(t *testing.T) {
	var f Filter
	for _, r := range "héllo" {
		f.Insert(r)
	}
	assert.Equal(t, 5, f.Len())

	f.Left()
	f.Left()
	f.Left()
	f.Backspace()
	assert.Equal(t, "hllo", f.String())

	before, after := f.Split()
	assert.Equal(t, "h", before)
	assert.Equal(t, "llo", after)
}

func TestFilter_Clear(t *testing.T) {
	var f Filter
	f.Insert('x')
	f.Clear()
	assert.True(t, f.Empty())
	assert.Equal(t, 0, f.Cursor())

	f.Insert('y')
	f.End()
	assert.Equal(t, "y", f.String())
	assert.Equal(t, 1, f.Cursor())
}
