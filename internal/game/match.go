package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MatchConfig describes a self-play match.
type MatchConfig struct {
	Rows   int
	Cols   int
	Level  int
	Logger *log.Logger
	Rand   *rand.Rand
}

// Match drives one game between two bots sharing a single board.
type Match struct {
	mu        sync.RWMutex
	id        string
	board     *Board
	searcher  *Searcher
	bots      map[Player]*Bot
	turn      Player
	moves     int
	status    StatusReport
	last      *MoveResult
	startedAt time.Time
	endedAt   time.Time
	onFinish  func(Snapshot)
}

// Snapshot is a read-only copy of a match for rendering and publishing.
type Snapshot struct {
	ID        string        `json:"gameId"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Board     [][]int       `json:"board"`
	Turn      Player        `json:"turn"`
	Moves     int           `json:"moves"`
	Status    StatusReport  `json:"status"`
	LastMove  *MoveResult   `json:"lastMove,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	EndedAt   time.Time     `json:"endedAt,omitempty"`
	Duration  time.Duration `json:"-"`

	board *Board
}

// BoardCopy returns the copied board held by the snapshot.
func (s Snapshot) BoardCopy() *Board { return s.board }

func NewMatch(cfg MatchConfig, onFinish func(Snapshot)) *Match {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	board := NewBoard(cfg.Rows, cfg.Cols)
	return &Match{
		id:       uuid.NewString(),
		board:    board,
		searcher: NewSearcher(board, cfg.Logger),
		bots: map[Player]*Bot{
			P1: NewBot(P1, cfg.Level, rng),
			P2: NewBot(P2, cfg.Level, rng),
		},
		turn:      P1,
		status:    board.EvaluateStatus(),
		startedAt: time.Now(),
		onFinish:  onFinish,
	}
}

func (m *Match) ID() string { return m.id }

// Step plays the current player's move and passes the turn.
func (m *Match) Step() (MoveResult, error) {
	m.mu.Lock()
	if m.status.Status.Finished() {
		m.mu.Unlock()
		return MoveResult{}, ErrGameFinished
	}
	player := m.turn
	res, err := m.bots[player].Move(m.searcher)
	if err != nil {
		// No legal column left; the board can only be full here.
		m.status = m.board.EvaluateStatus()
		m.mu.Unlock()
		return MoveResult{}, err
	}
	m.moves++
	m.status = res.StatusReport
	m.last = &res
	m.turn = player.Other()

	var finished *Snapshot
	if res.Status.Finished() {
		m.endedAt = time.Now()
		snap := m.snapshotLocked()
		finished = &snap
		log.Printf("match %s finished after %d moves: %s", m.id, m.moves, res.Status)
	}
	m.mu.Unlock()

	if finished != nil && m.onFinish != nil {
		m.onFinish(*finished)
	}
	return res, nil
}

// PlayOut steps until the game ends.
func (m *Match) PlayOut() (Snapshot, error) {
	for {
		res, err := m.Step()
		if err != nil {
			return m.Snapshot(), err
		}
		if res.Status.Finished() {
			return m.Snapshot(), nil
		}
	}
}

func (m *Match) Finished() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Status.Finished()
}

func (m *Match) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Match) snapshotLocked() Snapshot {
	board := m.board.Clone()
	snap := Snapshot{
		ID:        m.id,
		Rows:      board.rows,
		Cols:      board.cols,
		Board:     board.Grid(),
		Turn:      m.turn,
		Moves:     m.moves,
		Status:    m.status,
		StartedAt: m.startedAt,
		EndedAt:   m.endedAt,
		board:     board,
	}
	if m.last != nil {
		last := *m.last
		snap.LastMove = &last
	}
	if !m.endedAt.IsZero() {
		snap.Duration = m.endedAt.Sub(m.startedAt)
	}
	return snap
}
