package game

import (
	"io"
	"log"
	"math"
)

// SearchDepth is the number of plies explored below each root move.
const SearchDepth = 6

// MoveResult is the outcome of committing one move.
type MoveResult struct {
	StatusReport
	Player Player `json:"player"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
	// SearchScore is the minimax value of the chosen column; 0 for random moves.
	SearchScore int    `json:"searchScore"`
	Nodes       uint64 `json:"nodes"`
	Random      bool   `json:"random"`
}

// Searcher runs minimax with alpha-beta pruning directly on a board,
// placing and retracting pieces instead of copying. It must not be shared
// between goroutines.
type Searcher struct {
	board  *Board
	logger *log.Logger
	nodes  uint64
}

func NewSearcher(board *Board, logger *log.Logger) *Searcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Searcher{board: board, logger: logger}
}

// Nodes is the number of minimax calls made by the last BestMove.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// BestMove picks the column whose resulting position is best for player.
// P2 keeps the highest score, P1 the lowest; the first column wins ties.
// The board is left exactly as it was found.
func (s *Searcher) BestMove(player Player) (int, error) {
	col, _, err := s.bestMove(player)
	return col, err
}

func (s *Searcher) bestMove(player Player) (int, int, error) {
	s.nodes = 0
	s.logger.Printf("next smart move by %s", player)

	// The opponent replies next: it maximizes when player is P1.
	opponentMaximizes := player == P1
	best := math.MinInt32
	if player == P1 {
		best = math.MaxInt32
	}
	bestCol := -1
	for col := 0; col < s.board.cols; col++ {
		row, err := s.board.Place(player, col)
		if err != nil {
			continue
		}
		score := s.minimax(player.Other(), opponentMaximizes, math.MinInt32, math.MaxInt32, 0)
		s.board.Retract(row, col)
		s.logger.Printf("found score %d for col %d", score, col)
		if bestCol < 0 {
			bestCol = col
		}
		if player == P1 && score < best || player == P2 && score > best {
			best = score
			bestCol = col
		}
	}
	if bestCol < 0 {
		return -1, 0, ErrInvalidMove
	}
	s.logger.Printf("found col %d, score %d, as the best option for %s (%d nodes)", bestCol, best, player, s.nodes)
	return bestCol, best, nil
}

func (s *Searcher) minimax(player Player, maximizing bool, alpha, beta, depth int) int {
	s.nodes++
	score, hasEmpty := s.board.HeuristicScore()
	if depth >= SearchDepth || !hasEmpty {
		return score
	}
	next := player.Other()
	if maximizing {
		best := math.MinInt32
		for col := 0; col < s.board.cols; col++ {
			row, err := s.board.Place(player, col)
			if err != nil {
				continue
			}
			v := s.minimax(next, false, alpha, beta, depth+1)
			s.board.Retract(row, col)
			best = max(best, v)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}
	best := math.MaxInt32
	for col := 0; col < s.board.cols; col++ {
		row, err := s.board.Place(player, col)
		if err != nil {
			continue
		}
		v := s.minimax(next, true, alpha, beta, depth+1)
		s.board.Retract(row, col)
		best = min(best, v)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// Play searches for player's best column, commits it and reports the
// resulting position.
func (s *Searcher) Play(player Player) (MoveResult, error) {
	col, score, err := s.bestMove(player)
	if err != nil {
		return MoveResult{}, err
	}
	row, err := s.board.Place(player, col)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{
		StatusReport: s.board.EvaluateStatus(),
		Player:       player,
		Column:       col,
		Row:          row,
		SearchScore:  score,
		Nodes:        s.nodes,
	}, nil
}
