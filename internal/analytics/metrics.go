package analytics

import (
	"log"
	"sync"
)

// Metrics aggregates match events read back from the topic.
type Metrics struct {
	mu            sync.Mutex
	totalGames    int
	ties          int
	wins          map[string]int
	totalMoves    int
	searchedMoves int
	randomMoves   int
	totalNodes    float64
	columns       map[int]int
}

// Summary is a point-in-time copy of Metrics.
type Summary struct {
	TotalGames      int
	Ties            int
	Wins            map[string]int
	AvgMovesPerGame float64
	AvgNodesPerMove float64
	RandomMoves     int
	Columns         map[int]int
}

func NewMetrics() *Metrics {
	return &Metrics{
		wins:    make(map[string]int),
		columns: make(map[int]int),
	}
}

// Record folds one event into the totals. Unknown events are ignored.
func (m *Metrics) Record(e Event) {
	switch e.Event {
	case EventMovePlayed:
		m.recordMove(e.Payload)
	case EventGameFinished:
		m.recordGameFinished(e.Payload)
	}
}

func (m *Metrics) recordMove(payload map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if col, ok := payload["column"].(float64); ok {
		m.columns[int(col)]++
	}
	if random, _ := payload["random"].(bool); random {
		m.randomMoves++
		return
	}
	m.searchedMoves++
	if nodes, ok := payload["nodes"].(float64); ok {
		m.totalNodes += nodes
	}
}

func (m *Metrics) recordGameFinished(payload map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalGames++
	if winner, ok := payload["winner"].(string); ok && winner != "" {
		m.wins[winner]++
	} else {
		m.ties++
	}
	if moves, ok := payload["moves"].(float64); ok {
		m.totalMoves += int(moves)
	}
}

func (m *Metrics) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Summary{
		TotalGames:  m.totalGames,
		Ties:        m.ties,
		Wins:        make(map[string]int, len(m.wins)),
		RandomMoves: m.randomMoves,
		Columns:     make(map[int]int, len(m.columns)),
	}
	for k, v := range m.wins {
		s.Wins[k] = v
	}
	for k, v := range m.columns {
		s.Columns[k] = v
	}
	if m.totalGames > 0 {
		s.AvgMovesPerGame = float64(m.totalMoves) / float64(m.totalGames)
	}
	if m.searchedMoves > 0 {
		s.AvgNodesPerMove = m.totalNodes / float64(m.searchedMoves)
	}
	return s
}

func (m *Metrics) PrintStats() {
	s := m.Summary()
	log.Printf("=== ANALYTICS SUMMARY ===")
	log.Printf("Total Games: %d", s.TotalGames)
	log.Printf("Wins: %v", s.Wins)
	log.Printf("Ties: %d", s.Ties)
	log.Printf("Average Moves Per Game: %.2f", s.AvgMovesPerGame)
	log.Printf("Average Nodes Per Searched Move: %.0f", s.AvgNodesPerMove)
	log.Printf("Random Moves: %d", s.RandomMoves)
	log.Printf("Column Histogram: %v", s.Columns)
	log.Printf("========================")
}
