// Package display draws a game state for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/fatih/color"
)

type palette struct {
	red, black, axis, selected, legal, info *color.Color
}

// Renderer draws boards, with or without ANSI colors.
type Renderer struct {
	p palette
}

func NewRenderer(useColor bool) *Renderer {
	p := palette{
		red:      color.New(color.FgRed, color.Bold),
		black:    color.New(color.FgBlue, color.Bold),
		axis:     color.New(color.FgCyan),
		selected: color.New(color.FgYellow, color.Bold),
		legal:    color.New(color.FgGreen),
		info:     color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.red, p.black, p.axis, p.selected, p.legal, p.info} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Renderer{p: p}
}

// Render writes the board, the turn line and the capture tallies.
// Kings are upper case; the selected piece is bracketed and legal
// destinations are marked with +.
func (r *Renderer) Render(w io.Writer, state model.GameState) {
	legal := make(map[model.Position]bool, len(state.LegalMoves))
	for _, pos := range state.LegalMoves {
		legal[pos] = true
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < model.BoardSize; col++ {
		sb.WriteString(r.p.axis.Sprintf(" %d ", col))
	}
	sb.WriteString("\n")

	for row := 0; row < model.BoardSize; row++ {
		sb.WriteString(r.p.axis.Sprintf(" %d ", row))
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			sb.WriteString(r.cell(state, pos, legal[pos]))
		}
		sb.WriteString(r.p.axis.Sprintf(" %d", row))
		sb.WriteString("\n")
	}

	sb.WriteString(r.status(state))
	io.WriteString(w, sb.String())
}

func (r *Renderer) cell(state model.GameState, pos model.Position, legal bool) string {
	piece := state.Board.At(pos)
	switch {
	case piece != nil:
		glyph := r.glyph(*piece)
		if state.Selection != nil && *state.Selection == pos {
			return r.p.selected.Sprint("[") + glyph + r.p.selected.Sprint("]")
		}
		return " " + glyph + " "
	case legal:
		return r.p.legal.Sprint(" + ")
	case pos.IsDark():
		return " . "
	default:
		return "   "
	}
}

func (r *Renderer) glyph(p model.Piece) string {
	c, s := r.p.red, "r"
	if p.Owner == model.Black {
		c, s = r.p.black, "b"
	}
	if p.IsKing() {
		s = strings.ToUpper(s)
	}
	return c.Sprint(s)
}

func (r *Renderer) status(state model.GameState) string {
	var sb strings.Builder

	if state.Winner != "" {
		sb.WriteString(r.p.info.Sprintf("%s wins\n", r.owner(state.Winner)))
	} else {
		sb.WriteString(fmt.Sprintf("Turn: %s  (%s)\n", r.owner(state.Turn), phaseText(state.Phase)))
	}
	if state.ForcedContinuation != nil {
		sb.WriteString(r.p.selected.Sprintf("Must keep jumping with the piece on %s\n", state.ForcedContinuation))
	}
	if state.LastMove != nil {
		lm := state.LastMove
		note := ""
		if lm.Captured != nil {
			note += ", captured"
		}
		if lm.Promoted {
			note += ", crowned"
		}
		sb.WriteString(fmt.Sprintf("Last: %s %s -> %s%s\n", lm.Piece.Owner, lm.From, lm.To, note))
	}
	sb.WriteString(fmt.Sprintf("Red has taken %d, Black has taken %d\n",
		len(state.CapturedByRed), len(state.CapturedByBlack)))
	return sb.String()
}

func (r *Renderer) owner(o model.Owner) string {
	if o == model.Black {
		return r.p.black.Sprint("Black")
	}
	return r.p.red.Sprint("Red")
}

func phaseText(p model.Phase) string {
	switch p {
	case model.AwaitingDestination:
		return "choose a destination"
	case model.MustContinueJump:
		return "continue the jump"
	case model.GameOver:
		return "game over"
	default:
		return "choose a piece"
	}
}
