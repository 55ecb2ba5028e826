package model

type Phase string

const (
	AwaitingSelection   Phase = "awaitingSelection"
	AwaitingDestination Phase = "awaitingDestination"
	MustContinueJump    Phase = "mustContinueJump"
	GameOver            Phase = "gameOver"
)

// GameState is the read model handed to whatever draws the board.
type GameState struct {
	Board              Board      `json:"board"`
	Turn               Owner      `json:"turn"`
	Phase              Phase      `json:"phase"`
	Selection          *Position  `json:"selection"`
	ForcedContinuation *Position  `json:"forcedContinuation"`
	LegalMoves         []Position `json:"legalMoves"`
	CapturedByRed      []Piece    `json:"capturedByRed"`
	CapturedByBlack    []Piece    `json:"capturedByBlack"`
	LastMove           *Ply       `json:"lastMove"`
	Winner             Owner      `json:"winner,omitempty"`
	Rejection          string     `json:"rejection,omitempty"`
}

// Engine holds one game and applies clicks to it. It is not safe for
// concurrent use; callers serialize input.
type Engine struct {
	board           Board
	turn            Owner
	selection       *Position
	forced          *Position
	capturedByRed   []Piece
	capturedByBlack []Piece
	lastMove        *Ply
	winner          Owner
	rejection       error
}

func NewEngine() *Engine {
	return NewEngineFromBoard(NewBoard(), Red)
}

// NewEngineFromBoard starts a game from an arbitrary position.
func NewEngineFromBoard(board Board, turn Owner) *Engine {
	return &Engine{
		board:           board.clone(),
		turn:            turn,
		capturedByRed:   make([]Piece, 0),
		capturedByBlack: make([]Piece, 0),
	}
}

// Restart throws the current game away and sets up a new one.
func (e *Engine) Restart() {
	*e = *NewEngine()
}

// HandleSquareClick is Apply addressed by row and column.
func (e *Engine) HandleSquareClick(row, col int) GameState {
	return e.Apply(Position{Row: row, Col: col})
}

// Apply feeds one click into the game and returns the resulting state.
// Rejected clicks never fail and never touch the board; the reason is
// available from Rejection.
func (e *Engine) Apply(click Position) GameState {
	e.rejection = nil

	switch {
	case e.winner != "":
		e.rejection = ErrGameOver
	case !click.OnBoard():
		e.rejection = ErrOffBoard
	case e.selection == nil:
		e.SelectSquare(click)
	default:
		e.clickWithSelection(click)
	}
	return e.State()
}

func (e *Engine) clickWithSelection(click Position) {
	from := *e.selection
	if click == from {
		if e.forced == nil {
			e.selection = nil
		}
		return
	}

	if p := e.board.At(click); p != nil && p.Owner == e.turn {
		if e.forced != nil {
			e.rejection = ErrMustContinueJump
			return
		}
		e.selection = &click
		return
	}

	e.AttemptMove(from, click)
}

// SelectSquare picks the source of the next move. It does nothing unless pos
// holds a piece of the side to move and, mid-chain, is the jumping piece.
func (e *Engine) SelectSquare(pos Position) bool {
	if e.forced != nil && pos != *e.forced {
		e.rejection = ErrMustContinueJump
		return false
	}
	p := e.board.At(pos)
	if p == nil || p.Owner != e.turn {
		e.rejection = ErrNotYourPiece
		return false
	}
	e.selection = &pos
	return true
}

// AttemptMove plays from->to if it is a legal step or jump. An illegal
// attempt clears the selection; a source other than the forced square
// mid-chain is ignored outright.
func (e *Engine) AttemptMove(from, to Position) bool {
	if e.winner != "" {
		e.rejection = ErrGameOver
		return false
	}
	if e.forced != nil && from != *e.forced {
		e.rejection = ErrMustContinueJump
		return false
	}

	kind, err := e.validate(from, to)
	if err != nil {
		e.rejection = err
		e.selection = nil
		return false
	}

	e.execute(Move{From: from, To: to}, kind)
	return true
}

func (e *Engine) validate(from, to Position) (MoveKind, error) {
	if p := e.board.At(from); p == nil || p.Owner != e.turn {
		return "", ErrNotYourPiece
	}
	kind, err := Classify(&e.board, Move{From: from, To: to})
	if err != nil {
		return "", err
	}
	if e.forced != nil && kind != Jump {
		return "", ErrMustContinueJump
	}
	return kind, nil
}

func (e *Engine) execute(move Move, kind MoveKind) {
	piece := *e.board.At(move.From)
	ply := &Ply{Piece: piece, From: move.From, To: move.To, Kind: kind}

	e.board.set(move.To, e.board.At(move.From))
	e.board.set(move.From, nil)

	if kind == Jump {
		mid := move.midpoint()
		captured := *e.board.At(mid)
		e.board.set(mid, nil)
		if piece.Owner == Red {
			e.capturedByRed = append(e.capturedByRed, captured)
		} else {
			e.capturedByBlack = append(e.capturedByBlack, captured)
		}
		ply.Captured = &captured
	}

	if !piece.IsKing() && move.To.Row == piece.Owner.promotionRow() {
		piece = Piece{Owner: piece.Owner, Rank: King}
		e.board.set(move.To, &piece)
		ply.Promoted = true
	}
	e.lastMove = ply

	if kind == Jump && HasAnotherJump(&e.board, move.To, piece) {
		forced, selected := move.To, move.To
		e.forced = &forced
		e.selection = &selected
		return
	}
	e.endTurn()
}

func (e *Engine) endTurn() {
	e.selection = nil
	e.forced = nil
	if e.board.Count(e.turn.Opponent()) == 0 {
		e.winner = e.turn
	}
	e.turn = e.turn.Opponent()
}

func (e *Engine) Phase() Phase {
	switch {
	case e.winner != "":
		return GameOver
	case e.forced != nil:
		return MustContinueJump
	case e.selection != nil:
		return AwaitingDestination
	default:
		return AwaitingSelection
	}
}

// Rejection is the reason the last click changed nothing, or nil.
func (e *Engine) Rejection() error {
	return e.rejection
}

func (e *Engine) Turn() Owner {
	return e.turn
}

func (e *Engine) Board() Board {
	return e.board.clone()
}

// LegalMoves lists the destinations reachable from the current selection.
func (e *Engine) LegalMoves() []Position {
	moves := make([]Position, 0)
	if e.selection == nil || e.winner != "" {
		return moves
	}
	from := *e.selection
	for _, d := range [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, {2, 2}, {2, -2}, {-2, 2}, {-2, -2}} {
		to := from.offset(d[0], d[1])
		if _, err := e.validate(from, to); err == nil {
			moves = append(moves, to)
		}
	}
	return moves
}

// State returns a snapshot that shares nothing mutable with the engine.
func (e *Engine) State() GameState {
	state := GameState{
		Board:           e.board.clone(),
		Turn:            e.turn,
		Phase:           e.Phase(),
		LegalMoves:      e.LegalMoves(),
		CapturedByRed:   append([]Piece(nil), e.capturedByRed...),
		CapturedByBlack: append([]Piece(nil), e.capturedByBlack...),
		Winner:          e.winner,
	}
	if state.CapturedByRed == nil {
		state.CapturedByRed = make([]Piece, 0)
	}
	if state.CapturedByBlack == nil {
		state.CapturedByBlack = make([]Piece, 0)
	}
	if e.selection != nil {
		sel := *e.selection
		state.Selection = &sel
	}
	if e.forced != nil {
		forced := *e.forced
		state.ForcedContinuation = &forced
	}
	if e.lastMove != nil {
		ply := *e.lastMove
		if ply.Captured != nil {
			captured := *ply.Captured
			ply.Captured = &captured
		}
		state.LastMove = &ply
	}
	if e.rejection != nil {
		state.Rejection = e.rejection.Error()
	}
	return state
}
