package game

import "encoding/json"

type StatusKind uint8

const (
	Running StatusKind = iota
	Tie
	Won
)

// Status is derived from a board; Winner is only set when Kind is Won.
type Status struct {
	Kind   StatusKind
	Winner Player
}

func (s Status) String() string {
	switch s.Kind {
	case Tie:
		return "tie"
	case Won:
		return "won by " + s.Winner.String()
	default:
		return "running"
	}
}

// Finished reports whether the game is over.
func (s Status) Finished() bool { return s.Kind != Running }

func (s Status) MarshalJSON() ([]byte, error) {
	out := struct {
		Status string `json:"status"`
		Winner string `json:"winner,omitempty"`
	}{Status: "running"}
	switch s.Kind {
	case Tie:
		out.Status = "tie"
	case Won:
		out.Status = "won"
		out.Winner = s.Winner.String()
	}
	return json.Marshal(out)
}

// StatusReport is what the driving loop inspects after every committed move.
type StatusReport struct {
	Winning [][2]int `json:"winning"`
	Status  Status   `json:"state"`
	Score   int      `json:"score"`
}

// EvaluateStatus scans the board top to bottom, left to right. For every
// occupied cell it looks right, up, up-right and up-left (up meaning toward
// higher row indexes) and reports the first four-in-a-row found.
func (b *Board) EvaluateStatus() StatusReport {
	emptyFound := false
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := b.cells[r*b.cols+c]
			if cell == CellEmpty {
				emptyFound = true
				continue
			}
			winner, _ := cell.Player()
			if c+3 < b.cols && b.line(cell, r, c, 0, 1) {
				return won(winner, r, c, 0, 1)
			}
			if r+3 < b.rows {
				if b.line(cell, r, c, 1, 0) {
					return won(winner, r, c, 1, 0)
				}
				if c+3 < b.cols && b.line(cell, r, c, 1, 1) {
					return won(winner, r, c, 1, 1)
				}
				if c >= 3 && b.line(cell, r, c, 1, -1) {
					return won(winner, r, c, 1, -1)
				}
			}
		}
	}
	if emptyFound {
		return StatusReport{Winning: [][2]int{}, Status: Status{Kind: Running}}
	}
	return StatusReport{Winning: [][2]int{}, Status: Status{Kind: Tie}}
}

func (b *Board) line(cell Cell, r, c, dr, dc int) bool {
	for i := 1; i < 4; i++ {
		if b.cells[(r+i*dr)*b.cols+c+i*dc] != cell {
			return false
		}
	}
	return true
}

func won(p Player, r, c, dr, dc int) StatusReport {
	coords := make([][2]int, 0, 4)
	for i := 0; i < 4; i++ {
		coords = append(coords, [2]int{r + i*dr, c + i*dc})
	}
	return StatusReport{Winning: coords, Status: Status{Kind: Won, Winner: p}}
}
