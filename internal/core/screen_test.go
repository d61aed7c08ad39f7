package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, '▓', ColorGrass)

	c := s.GetCell(1, 1)
	if c.Rune != '▓' || c.Color != ColorGrass {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}

	s.Set(1, 1, 'x')
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Set should reset the colour")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('X')
	s.Clear()

	if strings.ContainsRune(s.String(), 'X') {
		t.Error("Clear should remove all content")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "HELLO", ColorHUD)

	if got := s.Row(1); got != "  HELLO             " {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(2, 1).Color != ColorHUD {
		t.Error("DrawTextColored should colour each cell")
	}

	// Clipped at the right edge without panicking
	s.DrawText(18, 2, "ABCDEF")
	if s.Get(19, 2) != 'B' {
		t.Errorf("Get(19, 2) = %q, expected 'B'", s.Get(19, 2))
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(0, 0, "♥♥♡")

	if got := s.Row(0); got != "♥♥♡  " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawRect(NewRect(1, 1, 2, 3), '#', ColorStone)

	count := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if s.Get(x, y) == '#' {
				count++
				if s.GetCell(x, y).Color != ColorStone {
					t.Errorf("cell (%d, %d) has wrong colour", x, y)
				}
			}
		}
	}
	if count != 6 {
		t.Errorf("DrawRect filled %d cells, expected 6", count)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	expected := "┌──┐\n│  │\n└──┘"
	if s.String() != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawHLine(1, 0, 3, '~', ColorHazard)

	if got := s.Row(0); got != " ~~~  " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 2x3", s.Width(), s.Height())
	}
	if s.String() != "ab\nef\n  " {
		t.Errorf("content after shrink = %q", s.String())
	}

	s.Resize(3, 1)
	if s.String() != "ab " {
		t.Errorf("content after grow = %q", s.String())
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("out-of-range Row = %q", got)
	}
}
