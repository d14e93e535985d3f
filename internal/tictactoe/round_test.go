package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tresenlinea/internal/apperror"
	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

func applyMoves(t *testing.T, controller *RoundController, cells ...int) entity.State {
	t.Helper()

	var state entity.State
	for _, cell := range cells {
		var err error
		state, err = controller.ApplyMove(cell)
		require.NoError(t, err, "cell %d", cell)
	}

	return state
}

func freshState() entity.State {
	return entity.State{
		Board:   entity.Board{},
		Turn:    entity.MarkX,
		Outcome: entity.InProgress(),
	}
}

func TestNewRoundController(t *testing.T) {
	// When: a controller is created
	controller := NewRoundController()

	// Then: the round is active on an empty board and scores are zero
	assert.Equal(t, freshState(), controller.State())
	assert.Equal(t, entity.Scores{}, controller.Scores())
	assert.False(t, controller.IsConcluded())
}

func TestRoundController_ApplyMove(t *testing.T) {
	t.Run("Row win is scored for X", func(t *testing.T) {
		// Given: a new session
		controller := NewRoundController()

		// When: X@0, O@3, X@1, O@4, X@2
		state := applyMoves(t, controller, 0, 3, 1, 4)
		assert.Equal(t, entity.Scores{}, controller.Scores())
		state = applyMoves(t, controller, 2)

		// Then: X wins the top row and the win is counted once
		assert.Equal(t, entity.Win(entity.MarkX), state.Outcome)
		assert.Equal(t, entity.Scores{X: 1}, controller.Scores())
		assert.True(t, controller.IsConcluded())
	})

	t.Run("Full board is scored as a tie", func(t *testing.T) {
		// Given: a new session
		controller := NewRoundController()

		// When: X@0,O@1,X@2,O@3,X@4,O@6,X@5,O@8,X@7
		state := applyMoves(t, controller, 0, 1, 2, 3, 4, 6, 5, 8)
		assert.True(t, state.Outcome.IsInProgress())
		state = applyMoves(t, controller, 7)

		// Then: the round is a tie and the tie is counted once
		assert.Equal(t, entity.Tie(), state.Outcome)
		assert.Equal(t, entity.Scores{Ties: 1}, controller.Scores())
	})

	t.Run("Occupied cell is rejected without side effects", func(t *testing.T) {
		// Given: X@4, O@0, X@8, O@1
		controller := NewRoundController()
		before := applyMoves(t, controller, 4, 0, 8, 1)

		// When: X tries cell 0, which holds O
		state, err := controller.ApplyMove(0)

		// Then: ErrCellOccupied is returned and board and turn are unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, state)
		assert.Equal(t, before, controller.State())
		assert.Equal(t, entity.MarkX, controller.State().Turn)
	})

	t.Run("Out of range cell is rejected without side effects", func(t *testing.T) {
		// Given: a round with two moves
		controller := NewRoundController()
		before := applyMoves(t, controller, 4, 0)

		// When: an out of range cell is played
		_, err := controller.ApplyMove(9)

		// Then: ErrOutOfRange is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, before, controller.State())
		assert.Equal(t, entity.Scores{}, controller.Scores())
	})

	t.Run("Moves after the round concluded do not score again", func(t *testing.T) {
		// Given: X has won
		controller := NewRoundController()
		before := applyMoves(t, controller, 0, 3, 1, 4, 2)

		// When: more moves are attempted
		_, err := controller.ApplyMove(5)
		_, errAgain := controller.ApplyMove(8)

		// Then: ErrGameAlreadyOver is returned and the score stays at one win
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		require.ErrorIs(t, errAgain, apperror.ErrGameAlreadyOver)
		assert.Equal(t, before, controller.State())
		assert.Equal(t, entity.Scores{X: 1}, controller.Scores())
	})
}

func TestRoundController_Reset(t *testing.T) {
	t.Run("ResetRound keeps scores and ResetSession zeroes them", func(t *testing.T) {
		// Given: a round won by X
		controller := NewRoundController()
		applyMoves(t, controller, 0, 3, 1, 4, 2)

		// When: the round is reset
		state := controller.ResetRound()

		// Then: the board is fresh and the win is kept
		assert.Equal(t, freshState(), state)
		assert.Equal(t, entity.Scores{X: 1}, controller.Scores())

		// When: the session is reset
		state, scores := controller.ResetSession()

		// Then: the board is fresh and every counter is zero
		assert.Equal(t, freshState(), state)
		assert.Equal(t, entity.Scores{}, scores)
		assert.Equal(t, entity.Scores{}, controller.Scores())
	})

	t.Run("ResetRound mid-round yields a fresh board", func(t *testing.T) {
		// Given: a round in progress with O to move
		controller := NewRoundController()
		applyMoves(t, controller, 4)

		// When: the round is reset
		state := controller.ResetRound()

		// Then: X moves first on an empty board
		assert.Equal(t, freshState(), state)
		assert.Equal(t, entity.Scores{}, controller.Scores())
	})

	t.Run("Scores accumulate across rounds", func(t *testing.T) {
		// Given: a new session
		controller := NewRoundController()

		// When: X wins, the round resets, the next round is a tie, then O wins
		applyMoves(t, controller, 0, 3, 1, 4, 2)
		controller.ResetRound()
		applyMoves(t, controller, 0, 1, 2, 3, 4, 6, 5, 8, 7)
		controller.ResetRound()
		applyMoves(t, controller, 0, 1, 2, 4, 3, 7)

		// Then: every outcome is counted exactly once
		assert.Equal(t, entity.Scores{X: 1, O: 1, Ties: 1}, controller.Scores())
	})

	t.Run("Moves are accepted again after ResetRound", func(t *testing.T) {
		// Given: a concluded round
		controller := NewRoundController()
		applyMoves(t, controller, 0, 3, 1, 4, 2)
		controller.ResetRound()

		// When: X plays cell 0 again
		state, err := controller.ApplyMove(0)

		// Then: the move is applied
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, state.Board[0])
		assert.Equal(t, entity.MarkO, state.Turn)
	})
}
