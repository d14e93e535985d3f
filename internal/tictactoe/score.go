package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tresenlinea/internal/apperror"
	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

// ScoreTracker counts wins and ties across the rounds of one session.
type ScoreTracker struct {
	scores entity.Scores
}

func NewScoreTracker() *ScoreTracker {
	return &ScoreTracker{}
}

func (that *ScoreTracker) RecordWin(mark entity.Mark) error {
	switch mark {
	case entity.MarkX:
		that.scores.X++
	case entity.MarkO:
		that.scores.O++
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, mark)
	}

	return nil
}

func (that *ScoreTracker) RecordTie() {
	that.scores.Ties++
}

func (that *ScoreTracker) Reset() {
	that.scores = entity.Scores{}
}

func (that *ScoreTracker) Scores() entity.Scores {
	return that.scores
}
