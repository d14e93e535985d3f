package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tresenlinea/internal/apperror"
	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

// WinCombos - rows, columns and diagonals, in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// BoardState owns the cells, the turn and the outcome of a single round.
type BoardState struct {
	board   entity.Board
	turn    entity.Mark
	outcome entity.Outcome
}

func NewBoardState() *BoardState {
	return &BoardState{
		turn:    entity.MarkX,
		outcome: entity.InProgress(),
	}
}

// ApplyMove - places the current player's mark on the cell.
func (that *BoardState) ApplyMove(cell int) (entity.Outcome, error) {
	if that.IsTerminal() {
		return that.outcome, apperror.ErrGameAlreadyOver
	}

	if err := validateMove(&that.board, cell); err != nil {
		return that.outcome, fmt.Errorf("invalid move: %w", err)
	}

	that.board[cell] = that.turn
	that.outcome = checkGameStatus(&that.board)

	if that.outcome.IsInProgress() {
		that.turn = that.turn.Opponent()
	}

	return that.outcome, nil
}

func (that *BoardState) IsTerminal() bool {
	return !that.outcome.IsInProgress()
}

func (that *BoardState) State() entity.State {
	return entity.State{
		Board:   that.board,
		Turn:    that.turn,
		Outcome: that.outcome,
	}
}

// validateMove - checks if the move is valid.
func validateMove(board *entity.Board, cell int) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if board[cell] != entity.MarkEmpty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

func checkGameStatus(board *entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.MarkEmpty && a == b && b == c {
			return entity.Win(a)
		}
	}

	// the round goes on until all the cells are taken
	if board.IsFull() {
		return entity.Tie()
	}

	return entity.InProgress()
}
