package game

// windowScore maps a 4-cell window to its heuristic value. P1 alignments are
// negative, P2 alignments positive, mixed windows are dead and score 0.
func windowScore(p1, p2, empty int) int {
	switch {
	case p1 == 4 && p2 == 0 && empty == 0:
		return -100
	case p1 == 3 && p2 == 0 && empty == 1:
		return -50
	case p1 == 2 && p2 == 0 && empty == 2:
		return -20
	case p1 == 1 && p2 == 0 && empty == 3:
		return -10
	case p1 == 0 && p2 == 4 && empty == 0:
		return 100
	case p1 == 0 && p2 == 3 && empty == 1:
		return 50
	case p1 == 0 && p2 == 2 && empty == 2:
		return 20
	case p1 == 0 && p2 == 1 && empty == 3:
		return 10
	}
	return 0
}

func (b *Board) window(r, c, dr, dc int) int {
	var p1, p2, empty int
	for i := 0; i < 4; i++ {
		switch b.cells[(r+i*dr)*b.cols+c+i*dc] {
		case CellEmpty:
			empty++
		case cellOf(P1):
			p1++
		case cellOf(P2):
			p2++
		}
	}
	return windowScore(p1, p2, empty)
}

// HeuristicScore sums every horizontal, vertical and diagonal window of four
// exactly once. hasEmpty reports whether any cell is still free.
func (b *Board) HeuristicScore() (score int, hasEmpty bool) {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.cells[r*b.cols+c] == CellEmpty {
				hasEmpty = true
			}
			if c+3 < b.cols {
				score += b.window(r, c, 0, 1)
			}
			if r+3 < b.rows {
				score += b.window(r, c, 1, 0)
				if c+3 < b.cols {
					score += b.window(r, c, 1, 1)
				}
				if c >= 3 {
					score += b.window(r, c, 1, -1)
				}
			}
		}
	}
	return score, hasEmpty
}
