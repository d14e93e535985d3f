package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
	"github.com/rocketscienceinc/tresenlinea/internal/tictactoe"
)

var ErrUnknownCommand = errors.New("unknown command")

type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandNewRound
	CommandResetSession
	CommandQuit
)

// Command is one line of player input. Cell is zero-based and only set for CommandMove.
type Command struct {
	Kind CommandKind
	Cell int
}

// ParseCommand accepts 1-9 for a cell, n for a new round, r to reset the scores and q to quit.
func ParseCommand(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))

	switch line {
	case "n", "new":
		return Command{Kind: CommandNewRound}, nil
	case "r", "reset":
		return Command{Kind: CommandResetSession}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}

	// out of range numbers go through to the board so it reports them
	return Command{Kind: CommandMove, Cell: n - 1}, nil
}

// CLI plays hot-seat rounds on one terminal until the players quit or input ends.
type CLI struct {
	Out   io.Writer
	In    *bufio.Reader
	Color bool

	controller *tictactoe.RoundController
	output     *termenv.Output
}

func New(out io.Writer, in io.Reader, color bool) *CLI {
	return &CLI{
		Out:   out,
		In:    bufio.NewReader(in),
		Color: color,
	}
}

func (c *CLI) Play() (entity.Scores, error) {
	c.controller = tictactoe.NewRoundController()
	c.output = newOutput(c.Out, c.Color)

	for {
		c.render()

		line, err := c.In.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			return c.controller.Scores(), nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return c.controller.Scores(), fmt.Errorf("failed to read input: %w", err)
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(c.Out, err)
			continue
		}

		switch cmd.Kind {
		case CommandQuit:
			return c.controller.Scores(), nil
		case CommandNewRound:
			c.controller.ResetRound()
		case CommandResetSession:
			c.controller.ResetSession()
		case CommandMove:
			if _, err = c.controller.ApplyMove(cmd.Cell); err != nil {
				fmt.Fprintln(c.Out, "illegal move:", err)
			}
		}
	}
}

func (c *CLI) render() {
	RenderSession(c.output, c.Out, c.controller.State(), c.controller.Scores())

	if c.controller.IsConcluded() {
		fmt.Fprint(c.Out, "n = new round, r = reset scores, q = quit> ")
		return
	}

	fmt.Fprintf(c.Out, "%s> ", c.controller.State().Turn)
}

func newOutput(out io.Writer, color bool) *termenv.Output {
	if color {
		return termenv.NewOutput(out)
	}

	return termenv.NewOutput(out, termenv.WithProfile(termenv.Ascii))
}

// RenderSession writes the scoreboard, the board and the round status.
func RenderSession(output *termenv.Output, out io.Writer, state entity.State, scores entity.Scores) {
	if output == nil {
		output = newOutput(out, false)
	}

	fmt.Fprintf(out, "\n%s %d   %s %d   %s %d\n\n",
		markStyle(output, entity.MarkX, "Player X"), scores.X,
		output.String("Ties").Faint(), scores.Ties,
		markStyle(output, entity.MarkO, "Player O"), scores.O,
	)

	RenderBoard(output, out, state.Board)

	switch {
	case state.Outcome.IsWin():
		fmt.Fprintf(out, "\nWinner: %s!\n", markStyle(output, state.Outcome.Winner, string(state.Outcome.Winner)))
	case state.Outcome.IsTie():
		fmt.Fprintf(out, "\nTie!\n")
	default:
		fmt.Fprintf(out, "\nTurn: %s\n", markStyle(output, state.Turn, string(state.Turn)))
	}
}

// RenderBoard writes the grid. Empty cells show the number to type for them.
func RenderBoard(output *termenv.Output, out io.Writer, board entity.Board) {
	if output == nil {
		output = newOutput(out, false)
	}

	for row := 0; row < 3; row++ {
		if row > 0 {
			fmt.Fprintln(out, "───┼───┼───")
		}

		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if board[i] == entity.MarkEmpty {
				cells = append(cells, " "+output.String(strconv.Itoa(i+1)).Faint().String()+" ")
				continue
			}
			cells = append(cells, " "+markStyle(output, board[i], string(board[i])).String()+" ")
		}

		fmt.Fprintln(out, strings.Join(cells, "│"))
	}
}

func markStyle(output *termenv.Output, mark entity.Mark, text string) termenv.Style {
	style := output.String(text).Bold()

	switch mark {
	case entity.MarkX:
		return style.Foreground(output.Color("6"))
	case entity.MarkO:
		return style.Foreground(output.Color("5"))
	default:
		return style
	}
}
