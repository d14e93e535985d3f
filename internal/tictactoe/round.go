package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

// RoundController is the only entry point that mutates a session's board and scores.
// A round is Active while its board is in progress and Concluded afterwards.
type RoundController struct {
	board  *BoardState
	scores *ScoreTracker
}

func NewRoundController() *RoundController {
	return &RoundController{
		board:  NewBoardState(),
		scores: NewScoreTracker(),
	}
}

// ApplyMove - plays the cell for the player whose turn it is.
// Scores are updated before returning when the move concludes the round.
func (that *RoundController) ApplyMove(cell int) (entity.State, error) {
	outcome, err := that.board.ApplyMove(cell)
	if err != nil {
		return that.board.State(), fmt.Errorf("failed to apply move: %w", err)
	}

	// a concluded board rejects every move, so this runs once per round
	if that.board.IsTerminal() {
		if err = that.recordOutcome(outcome); err != nil {
			return that.board.State(), err
		}
	}

	return that.board.State(), nil
}

func (that *RoundController) recordOutcome(outcome entity.Outcome) error {
	switch {
	case outcome.IsWin():
		if err := that.scores.RecordWin(outcome.Winner); err != nil {
			return fmt.Errorf("failed to record win: %w", err)
		}
	case outcome.IsTie():
		that.scores.RecordTie()
	}

	return nil
}

// ResetRound - starts a new round, scores are kept.
func (that *RoundController) ResetRound() entity.State {
	that.board = NewBoardState()

	return that.board.State()
}

// ResetSession - starts a new round and zeroes the scores.
func (that *RoundController) ResetSession() (entity.State, entity.Scores) {
	state := that.ResetRound()
	that.scores.Reset()

	return state, that.scores.Scores()
}

func (that *RoundController) State() entity.State {
	return that.board.State()
}

func (that *RoundController) Scores() entity.Scores {
	return that.scores.Scores()
}

func (that *RoundController) IsConcluded() bool {
	return that.board.IsTerminal()
}
