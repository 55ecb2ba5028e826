package model

import (
	"strings"
	"testing"
)

var (
	redMan     = Piece{Owner: Red, Rank: Man}
	redKing    = Piece{Owner: Red, Rank: King}
	blackMan   = Piece{Owner: Black, Rank: Man}
	blackKing  = Piece{Owner: Black, Rank: King}
	emptyBoard Board
)

func at(row, col int) Position {
	return Position{Row: row, Col: col}
}

// boardWith places pieces on an otherwise empty board.
func boardWith(t *testing.T, pieces map[Position]Piece) Board {
	t.Helper()
	b := emptyBoard
	for pos, p := range pieces {
		if !pos.OnBoard() || !pos.IsDark() {
			t.Fatalf("test setup: %s is not a playable square", pos)
		}
		b.set(pos, &Piece{Owner: p.Owner, Rank: p.Rank})
	}
	return b
}

func TestNewBoardInitialSetup(t *testing.T) {
	b := NewBoard()

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := at(row, col)
			got := b.At(pos)

			var want *Piece
			if pos.IsDark() && row <= 2 {
				want = &redMan
			}
			if pos.IsDark() && row >= 5 {
				want = &blackMan
			}

			switch {
			case want == nil && got != nil:
				t.Errorf("%s: expected empty, got %+v", pos, *got)
			case want != nil && got == nil:
				t.Errorf("%s: expected %+v, got empty", pos, *want)
			case want != nil && *got != *want:
				t.Errorf("%s: expected %+v, got %+v", pos, *want, *got)
			}
		}
	}

	if n := b.Count(Red); n != 12 {
		t.Errorf("expected 12 red pieces, got %d", n)
	}
	if n := b.Count(Black); n != 12 {
		t.Errorf("expected 12 black pieces, got %d", n)
	}
}

func TestPositionIsDark(t *testing.T) {
	tests := []struct {
		pos  Position
		dark bool
	}{
		{at(0, 0), false},
		{at(0, 1), true},
		{at(1, 0), true},
		{at(7, 7), false},
		{at(7, 0), true},
	}
	for _, tt := range tests {
		if got := tt.pos.IsDark(); got != tt.dark {
			t.Errorf("%s.IsDark() = %v, want %v", tt.pos, got, tt.dark)
		}
	}
}

func TestBoardAtOffBoard(t *testing.T) {
	b := NewBoard()
	for _, pos := range []Position{at(-1, 0), at(0, 8), at(8, 1), at(3, -2)} {
		if p := b.At(pos); p != nil {
			t.Errorf("At(%s) = %+v, want nil", pos, *p)
		}
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	b := NewBoard()
	b.set(at(3, 2), &redKing)
	b.set(at(4, 1), &blackKing)

	parsed, err := ParseBoard(b.String())
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	if parsed.String() != b.String() {
		t.Fatalf("round trip mismatch:\n%s\nvs\n%s", parsed.String(), b.String())
	}
	if p := parsed.At(at(3, 2)); p == nil || *p != redKing {
		t.Errorf("expected red king on (3,2), got %v", p)
	}
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"TooFewRows", strings.Repeat("........\n", 7)},
		{"LongRow", strings.Repeat("........\n", 7) + "........."},
		{"PieceOnLightSquare", "r.......\n" + strings.Repeat("........\n", 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.layout); err == nil {
				t.Fatalf("expected error for layout:\n%s", tt.layout)
			}
		})
	}
}
