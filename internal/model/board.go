package model

import (
	"fmt"
	"strings"
)

const BoardSize = 8

type Rank string

const (
	Man  Rank = "man"
	King Rank = "king"
)

// Piece is never mutated once placed; promotion swaps in a new King piece.
type Piece struct {
	Owner Owner `json:"owner"`
	Rank  Rank  `json:"rank"`
}

func (p Piece) IsKing() bool {
	return p.Rank == King
}

func (p Piece) notation() byte {
	switch {
	case p.Owner == Red && p.IsKing():
		return 'R'
	case p.Owner == Red:
		return 'r'
	case p.IsKing():
		return 'B'
	default:
		return 'b'
	}
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// IsDark reports whether the square is playable.
func (p Position) IsDark() bool {
	return (p.Row+p.Col)%2 == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Board is indexed [row][col]; nil cells are empty.
type Board [BoardSize][BoardSize]*Piece

func NewBoard() Board {
	var b Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			if !pos.IsDark() {
				continue
			}
			switch {
			case row < 3:
				b[row][col] = &Piece{Owner: Red, Rank: Man}
			case row >= BoardSize-3:
				b[row][col] = &Piece{Owner: Black, Rank: Man}
			}
		}
	}
	return b
}

// At returns the piece on pos, or nil for an empty or off-board square.
func (b *Board) At(pos Position) *Piece {
	if !pos.OnBoard() {
		return nil
	}
	return b[pos.Row][pos.Col]
}

func (b *Board) set(pos Position, p *Piece) {
	b[pos.Row][pos.Col] = p
}

// clone copies the board along with every piece on it.
func (b Board) clone() Board {
	for row := range b {
		for col, p := range b[row] {
			if p != nil {
				piece := *p
				b[row][col] = &piece
			}
		}
	}
	return b
}

func (b Board) Count(owner Owner) int {
	n := 0
	for row := range b {
		for _, p := range b[row] {
			if p != nil && p.Owner == owner {
				n++
			}
		}
	}
	return n
}

// String renders the board one row per line, row 0 first.
func (b Board) String() string {
	out := make([]byte, 0, BoardSize*(BoardSize+1))
	for row := range b {
		for col, p := range b[row] {
			switch {
			case p != nil:
				out = append(out, p.notation())
			case (row+col)%2 == 1:
				out = append(out, '.')
			default:
				out = append(out, ' ')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

// ParseBoard reads the layout produced by String: eight lines of eight cells,
// 'r'/'b' for men, 'R'/'B' for kings, anything else empty.
func ParseBoard(layout string) (Board, error) {
	var b Board
	lines := strings.Split(strings.Trim(layout, "\n"), "\n")
	if len(lines) != BoardSize {
		return b, fmt.Errorf("invalid board: expected %d rows, got %d", BoardSize, len(lines))
	}
	for row, line := range lines {
		if len(line) > BoardSize {
			return b, fmt.Errorf("invalid board: row %d has %d cells", row, len(line))
		}
		for col := 0; col < len(line); col++ {
			var p *Piece
			switch line[col] {
			case 'r':
				p = &Piece{Owner: Red, Rank: Man}
			case 'R':
				p = &Piece{Owner: Red, Rank: King}
			case 'b':
				p = &Piece{Owner: Black, Rank: Man}
			case 'B':
				p = &Piece{Owner: Black, Rank: King}
			default:
				continue
			}
			pos := Position{Row: row, Col: col}
			if !pos.IsDark() {
				return b, fmt.Errorf("invalid board: piece on light square %s", pos)
			}
			b.set(pos, p)
		}
	}
	return b, nil
}
