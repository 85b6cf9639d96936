package game

import (
	"math/rand"
)

// MaxLevel is the first level that never plays random moves.
const MaxLevel = 8

// Bot plays for one side. Lower levels mix in random moves.
type Bot struct {
	Player Player
	Level  int
	rng    *rand.Rand
}

func NewBot(player Player, level int, rng *rand.Rand) *Bot {
	return &Bot{Player: player, Level: level, rng: rng}
}

// RandomPercent is the chance, out of 100, that a move at level is random.
func RandomPercent(level int) int {
	switch {
	case level <= 1:
		return 50
	case level <= 3:
		return 30
	case level <= 5:
		return 10
	case level <= 7:
		return 5
	}
	return 0
}

// Move commits the bot's next move on the searcher's board.
func (b *Bot) Move(s *Searcher) (MoveResult, error) {
	if pct := RandomPercent(b.Level); pct > 0 && b.rng != nil && b.rng.Intn(100) < pct {
		col, err := RandomMove(s.board, b.rng)
		if err != nil {
			return MoveResult{}, err
		}
		row, err := s.board.Place(b.Player, col)
		if err != nil {
			return MoveResult{}, err
		}
		return MoveResult{
			StatusReport: s.board.EvaluateStatus(),
			Player:       b.Player,
			Column:       col,
			Row:          row,
			Random:       true,
		}, nil
	}
	return s.Play(b.Player)
}

// RandomMove tries the columns in shuffled order and returns the first one
// that can take a piece.
func RandomMove(board *Board, rng *rand.Rand) (int, error) {
	for _, col := range rng.Perm(board.cols) {
		if board.CanPlay(col) {
			return col, nil
		}
	}
	return -1, ErrInvalidMove
}
