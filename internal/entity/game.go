package entity

type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

const (
	StatusInProgress = "in_progress"
	StatusWin        = "win"
	StatusTie        = "tie"
)

const BoardSize = 9

type Board [BoardSize]Mark

// Opponent returns the other player's mark. Empty maps to empty.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// IsFull reports whether every cell holds a mark.
func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == MarkEmpty {
			return false
		}
	}

	return true
}

// Outcome is the status of a round. Winner is set only when Status is StatusWin.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Win(mark Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func Tie() Outcome {
	return Outcome{Status: StatusTie}
}

func (that Outcome) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsTie() bool {
	return that.Status == StatusTie
}

// State is a read-only snapshot of a round handed to presentation code.
type State struct {
	Board   Board   `json:"board"`
	Turn    Mark    `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

type Scores struct {
	X    int `json:"x"`
	O    int `json:"o"`
	Ties int `json:"ties"`
}

// RoundEvent is emitted once for every round that ends in a win or a tie.
type RoundEvent struct {
	SessionID string  `json:"session_id"`
	Board     Board   `json:"board"`
	Outcome   Outcome `json:"outcome"`
	Scores    Scores  `json:"scores"`
}

// Session is what presentation code gets back: the round snapshot plus the running scores.
type Session struct {
	ID     string `json:"id"`
	State  State  `json:"state"`
	Scores Scores `json:"scores"`
}

// State - the final round snapshot carried by the event. The turn is the last mover.
func (that *RoundEvent) State() State {
	turn := MarkEmpty
	if that.Outcome.IsWin() {
		turn = that.Outcome.Winner
	}

	return State{
		Board:   that.Board,
		Turn:    turn,
		Outcome: that.Outcome,
	}
}
