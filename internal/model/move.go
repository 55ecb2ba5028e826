package model

type MoveKind string

const (
	Step MoveKind = "step"
	Jump MoveKind = "jump"
)

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) delta() (int, int) {
	return m.To.Row - m.From.Row, m.To.Col - m.From.Col
}

// midpoint is only meaningful for jumps.
func (m Move) midpoint() Position {
	dRow, dCol := m.delta()
	return m.From.offset(dRow/2, dCol/2)
}

// Ply is the record of the last applied move, kept for highlighting.
type Ply struct {
	Piece    Piece    `json:"piece"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Kind     MoveKind `json:"kind"`
	Captured *Piece   `json:"captured"`
	Promoted bool     `json:"promoted"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Classify decides whether move is a legal step or jump for the piece on
// move.From. The board is not modified.
func Classify(board *Board, move Move) (MoveKind, error) {
	if !move.From.OnBoard() || !move.To.OnBoard() {
		return "", ErrOffBoard
	}
	piece := board.At(move.From)
	if piece == nil {
		return "", ErrNotYourPiece
	}
	if !move.To.IsDark() {
		return "", ErrLightSquare
	}
	if board.At(move.To) != nil {
		return "", ErrOccupied
	}

	dRow, dCol := move.delta()
	if abs(dRow) != abs(dCol) || (abs(dRow) != 1 && abs(dRow) != 2) {
		return "", ErrBadDistance
	}
	if !piece.IsKing() && dRow*piece.Owner.forward() < 0 {
		return "", ErrWrongDirection
	}

	if abs(dRow) == 1 {
		return Step, nil
	}
	jumped := board.At(move.midpoint())
	if jumped == nil || jumped.Owner == piece.Owner {
		return "", ErrNoCapture
	}
	return Jump, nil
}

func jumpDirections(p Piece) [][2]int {
	if p.IsKing() {
		return [][2]int{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}}
	}
	f := 2 * p.Owner.forward()
	return [][2]int{{f, 2}, {f, -2}}
}

// HasAnotherJump reports whether piece, standing on from, has at least one
// capture available.
func HasAnotherJump(board *Board, from Position, piece Piece) bool {
	for _, dir := range jumpDirections(piece) {
		to := from.offset(dir[0], dir[1])
		if !to.OnBoard() || board.At(to) != nil {
			continue
		}
		mid := board.At(from.offset(dir[0]/2, dir[1]/2))
		if mid != nil && mid.Owner != piece.Owner {
			return true
		}
	}
	return false
}
