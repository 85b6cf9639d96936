package game

import (
	"errors"
	"fmt"
)

// Player identifies one of the two sides. P1 is the minimizing side of the
// heuristic, P2 the maximizing one.
type Player uint8

const (
	P1 Player = iota + 1
	P2
)

// Other returns the opponent.
func (p Player) Other() Player {
	if p == P1 {
		return P2
	}
	return P1
}

func (p Player) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return "none"
	}
}

// Piece is the single character used when drawing the board.
func (p Player) Piece() string {
	if p == P1 {
		return "X"
	}
	return "O"
}

// Cell holds the player occupying a square; CellEmpty when free.
type Cell uint8

const CellEmpty Cell = 0

func cellOf(p Player) Cell { return Cell(p) }

// Player returns the occupant, false for an empty cell.
func (c Cell) Player() (Player, bool) {
	if c == CellEmpty {
		return 0, false
	}
	return Player(c), true
}

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrGameFinished = errors.New("game already finished")
)

// Board is a rows x cols grid stored row-major. Row 0 is the top, pieces
// fall toward rows-1.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

func NewBoard(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("game: invalid board size %dx%d", rows, cols))
	}
	return &Board{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) index(row, col int) int {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		panic(fmt.Sprintf("game: cell (%d,%d) outside %dx%d board", row, col, b.rows, b.cols))
	}
	return row*b.cols + col
}

func (b *Board) At(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

// CanPlay reports whether col accepts another piece.
func (b *Board) CanPlay(col int) bool {
	return col >= 0 && col < b.cols && b.cells[col] == CellEmpty
}

// Place drops a piece for player into col and returns the row it landed on.
func (b *Board) Place(player Player, col int) (int, error) {
	if col < 0 || col >= b.cols {
		return -1, fmt.Errorf("%w: column %d out of range", ErrInvalidMove, col)
	}
	for row := b.rows - 1; row >= 0; row-- {
		i := row*b.cols + col
		if b.cells[i] == CellEmpty {
			b.cells[i] = cellOf(player)
			return row, nil
		}
	}
	return -1, ErrInvalidMove
}

// Retract empties a cell. Callers undo their own placements in reverse order.
func (b *Board) Retract(row, col int) {
	b.cells[b.index(row, col)] = CellEmpty
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	for _, c := range b.cells {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{rows: b.rows, cols: b.cols, cells: cells}
}

// Equal compares dimensions and every cell.
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Grid returns the board as rows of player numbers (0 empty), the shape the
// websocket clients expect.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for r := 0; r < b.rows; r++ {
		grid[r] = make([]int, b.cols)
		for c := 0; c < b.cols; c++ {
			grid[r][c] = int(b.cells[r*b.cols+c])
		}
	}
	return grid
}
