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
		if row := s.Row(y); strings.TrimSpace(row) != "" {
			t.Fatalf("new screen row %d should be blank, got %q", y, row)
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCactus)
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}
	if s.GetCell(5, 5).Color != ColorCactus {
		t.Errorf("GetCell(5, 5).Color = %d, expected ColorCactus", s.GetCell(5, 5).Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearAndResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawHLine(0, 0, 4, '=', ColorSand)
	if s.Row(0) != "====" {
		t.Fatalf("Row(0) = %q, expected ====", s.Row(0))
	}

	s.Clear()
	if s.Row(0) != "    " {
		t.Errorf("Clear() left %q", s.Row(0))
	}

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Errorf("Resize() = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if len(strings.Split(s.String(), "\n")) != 3 {
		t.Errorf("String() should have 3 lines")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawTextCentered(1, "GO", ColorHUD)

	if got := s.Row(1); got != "     GO     " {
		t.Errorf("centered row = %q", got)
	}

	s.DrawText(10, 0, "clip", ColorHUD)
	if got := s.Row(0); got != "          cl" {
		t.Errorf("clipped row = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(0, 0, 5, 3, ColorHUD)

	expected := []string{"┌───┐", "│   │", "└───┘"}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}
