package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

func TestParseCommand(t *testing.T) {
	t.Run("Cells are one-based", func(t *testing.T) {
		cmd, err := ParseCommand("1\n")
		require.NoError(t, err)
		assert.Equal(t, Command{Kind: CommandMove, Cell: 0}, cmd)

		cmd, err = ParseCommand(" 9 ")
		require.NoError(t, err)
		assert.Equal(t, Command{Kind: CommandMove, Cell: 8}, cmd)
	})

	t.Run("Out of range numbers are passed through", func(t *testing.T) {
		cmd, err := ParseCommand("10")
		require.NoError(t, err)
		assert.Equal(t, Command{Kind: CommandMove, Cell: 9}, cmd)
	})

	t.Run("Control commands", func(t *testing.T) {
		for line, kind := range map[string]CommandKind{
			"n":     CommandNewRound,
			"NEW":   CommandNewRound,
			"r":     CommandResetSession,
			"reset": CommandResetSession,
			"q":     CommandQuit,
			"exit":  CommandQuit,
		} {
			cmd, err := ParseCommand(line)
			require.NoError(t, err, line)
			assert.Equal(t, kind, cmd.Kind, line)
		}
	})

	t.Run("Unknown input", func(t *testing.T) {
		_, err := ParseCommand("undo")
		require.ErrorIs(t, err, ErrUnknownCommand)
	})
}

func TestRenderBoard(t *testing.T) {
	// Given: a board with two marks
	board := entity.Board{entity.MarkX, entity.MarkEmpty, entity.MarkEmpty, entity.MarkEmpty, entity.MarkO}

	// When: it is rendered without colors
	var out bytes.Buffer
	RenderBoard(nil, &out, board)

	// Then: marks and free cell numbers are shown
	expected := " X │ 2 │ 3 \n" +
		"───┼───┼───\n" +
		" 4 │ O │ 6 \n" +
		"───┼───┼───\n" +
		" 7 │ 8 │ 9 \n"
	assert.Equal(t, expected, out.String())
}

func TestCLI_Play(t *testing.T) {
	t.Run("Win, new round, tie and quit", func(t *testing.T) {
		// Given: X wins the top row, then a new round ends in a tie
		input := strings.Join([]string{
			"1", "4", "2", "5", "3",
			"5",
			"n",
			"1", "2", "3", "4", "5", "7", "6", "9", "8",
			"q",
		}, "\n") + "\n"

		var out bytes.Buffer
		game := New(&out, strings.NewReader(input), false)

		// When: the session is played
		scores, err := game.Play()

		// Then: one win and one tie are counted and the extra move was rejected
		require.NoError(t, err)
		assert.Equal(t, entity.Scores{X: 1, Ties: 1}, scores)
		assert.Contains(t, out.String(), "Winner: X!")
		assert.Contains(t, out.String(), "Tie!")
		assert.Contains(t, out.String(), "game is already over")
	})

	t.Run("Reset zeroes scores and EOF ends the session", func(t *testing.T) {
		// Given: X wins, then the scores are reset, input ends without quit
		input := "1\n4\n2\n5\n3\nr\n10\nfoo"

		var out bytes.Buffer
		game := New(&out, strings.NewReader(input), false)

		// When: the session is played
		scores, err := game.Play()

		// Then: scores are zero and the bad inputs were reported
		require.NoError(t, err)
		assert.Equal(t, entity.Scores{}, scores)
		assert.Contains(t, out.String(), "out of range")
		assert.Contains(t, out.String(), `unknown command: "foo"`)
	})
}
