// Package main is a hot-seat checkers game for the terminal: both players
// type square clicks into the same prompt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/checkers-backend/internal/display"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/chzyer/readline"
)

const help = `Commands:
  <row> <col>   click a square (select a piece, then its destination)
  restart       start a new game
  help          show this text
  quit          leave`

func main() {
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	historyFile := flag.String("history", "", "Optional readline history file")
	flag.Parse()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "checkers > ",
		HistoryFile:     *historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	renderer := display.NewRenderer(!*noColor)
	engine := model.NewEngine()
	out := rl.Stdout()

	renderer.Render(out, engine.State())
	fmt.Fprintln(out, "Type 'help' for commands")

	for {
		rl.SetPrompt(prompt(engine))
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return
		}
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return
			}
			continue
		}
		if err != nil {
			continue
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case "":
			continue
		case "quit", "exit", "q":
			return
		case "help", "?":
			fmt.Fprintln(out, help)
		case "restart":
			engine.Restart()
			renderer.Render(out, engine.State())
		default:
			pos, err := parseSquare(cmd)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			state := engine.Apply(pos)
			renderer.Render(out, state)
			if state.Rejection != "" {
				fmt.Fprintf(out, "(%s)\n", state.Rejection)
			}
		}
	}
}

func prompt(e *model.Engine) string {
	return fmt.Sprintf("checkers [%s] > ", e.Turn())
}

// parseSquare accepts "row col" or "row,col".
func parseSquare(s string) (model.Position, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 2 {
		return model.Position{}, fmt.Errorf("expected <row> <col>, got %q", s)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.Position{}, fmt.Errorf("bad row %q", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.Position{}, fmt.Errorf("bad col %q", fields[1])
	}
	pos := model.Position{Row: row, Col: col}
	if !pos.OnBoard() {
		return model.Position{}, fmt.Errorf("square %s is off the board", pos)
	}
	return pos, nil
}
