package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeAt(s *Screen, x, y int) rune {
	return s.GetCell(x, y).Rune
}

func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	assert.Equal(t, 80, s.Width())
	assert.Equal(t, 24, s.Height())

	for y := range s.Height() {
		for x := range s.Width() {
			require.Equal(t, blankCell, s.GetCell(x, y), "new screen not blank at (%d, %d)", x, y)
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)

	assert.Zero(t, s.Width())
	assert.Zero(t, s.Height())
	assert.Empty(t, s.String())
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	assert.Equal(t, 'X', runeAt(s, 5, 5))

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	assert.Equal(t, ' ', runeAt(s, -1, 0))
	assert.Equal(t, ' ', runeAt(s, 100, 0))
	assert.Equal(t, ' ', runeAt(s, 0, 0))
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '●', ColorYellow)
	s.DrawTextColored(3, 2, "ok", ColorGreen)

	assert.Equal(t, Cell{Rune: '●', Color: ColorYellow}, s.GetCell(1, 1))
	assert.Equal(t, Cell{Rune: 'k', Color: ColorGreen}, s.GetCell(4, 2))

	// Plain Set resets the color
	s.Set(1, 1, 'x')
	assert.Equal(t, ColorDefault, s.GetCell(1, 1).Color)
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(0, 0, 10, 10), 'X')

	s.Clear()

	assert.Equal(t, strings.Repeat(strings.Repeat(" ", 10)+"\n", 9)+strings.Repeat(" ", 10), s.String())
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	assert.Equal(t, "  Hello", strings.TrimRight(rows(s)[1], " "))

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	assert.Equal(t, 'H', runeAt(s, 18, 0))
	assert.Equal(t, 'e', runeAt(s, 19, 0))
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "←→x")

	assert.Equal(t, '←', runeAt(s, 0, 0))
	assert.Equal(t, '→', runeAt(s, 1, 0))
	assert.Equal(t, 'x', runeAt(s, 2, 0), "multibyte runes occupy one cell each")
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	assert.Equal(t, 'H', runeAt(s, x, 2))
	assert.Equal(t, 'i', runeAt(s, x+1, 2))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		assert.Equal(t, want, runeAt(s, pos[0], pos[1]), "corner at %v", pos)
	}

	for x := 2; x < 5; x++ {
		assert.Equal(t, '─', runeAt(s, x, 1), "top edge at x=%d", x)
		assert.Equal(t, '─', runeAt(s, x, 4), "bottom edge at x=%d", x)
	}
	for y := 2; y < 4; y++ {
		assert.Equal(t, '│', runeAt(s, 1, y), "left edge at y=%d", y)
		assert.Equal(t, '│', runeAt(s, 5, y), "right edge at y=%d", y)
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '-')

	assert.Equal(t, "  -----   ", rows(s)[2])
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	assert.Equal(t, "AAAAA\nBBBBB\nCCCCC", s.String())
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	assert.Equal(t, 8, s.Width())
	assert.Equal(t, 4, s.Height())
	assert.True(t, strings.HasPrefix(rows(s)[0], "Hello"), "content is preserved")

	s.Resize(15, 8)
	lines := rows(s)
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "Hello"), "content is preserved after enlarging")
	assert.Empty(t, strings.TrimSpace(lines[5]), "rows cut by shrinking come back blank")
}
