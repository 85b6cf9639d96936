package game

import (
	"errors"
	"testing"
)

// drawPlayer colors a full board so that no four in a row exists: colors
// alternate along rows and in pairs down each column.
func drawPlayer(row, col int) Player {
	if (row/2+col)%2 == 0 {
		return P1
	}
	return P2
}

// fillColumn stacks the draw pattern into col, bottom row first.
func fillColumn(t *testing.T, b *Board, col int) {
	t.Helper()
	for row := b.Rows() - 1; row >= 0; row-- {
		got, err := b.Place(drawPlayer(row, col), col)
		if err != nil {
			t.Fatalf("place col %d: %v", col, err)
		}
		if got != row {
			t.Fatalf("expected piece in row %d, landed in %d", row, got)
		}
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard(6, 7)
	if b.Rows() != 6 || b.Cols() != 7 {
		t.Fatalf("unexpected size %dx%d", b.Rows(), b.Cols())
	}
	for r := 0; r < 6; r++ {
		for c := 0; c < 7; c++ {
			if b.At(r, c) != CellEmpty {
				t.Fatalf("cell (%d,%d) not empty", r, c)
			}
		}
	}
	if b.Full() {
		t.Fatalf("new board reported full")
	}
}

func TestNewBoardRejectsBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for 0x7 board")
		}
	}()
	NewBoard(0, 7)
}

func TestPlaceFallsToLowestEmptyRow(t *testing.T) {
	b := NewBoard(6, 7)
	for want := 5; want >= 0; want-- {
		row, err := b.Place(P1, 2)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if row != want {
			t.Fatalf("expected row %d, got %d", want, row)
		}
	}
	if b.CanPlay(2) {
		t.Fatalf("column 2 should be full")
	}
}

func TestPlaceFullColumnFailsWithoutMutation(t *testing.T) {
	b := NewBoard(4, 5)
	fillColumn(t, b, 1)
	before := b.Clone()
	if _, err := b.Place(P2, 1); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if !b.Equal(before) {
		t.Fatalf("board changed on failed place")
	}
}

func TestPlaceOutOfRangeColumn(t *testing.T) {
	b := NewBoard(6, 7)
	for _, col := range []int{-1, 7, 100} {
		if _, err := b.Place(P1, col); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("col %d: expected ErrInvalidMove, got %v", col, err)
		}
	}
}

func TestPlaceFailsOnlyWhenTopOccupied(t *testing.T) {
	b := NewBoard(3, 4)
	for col := 0; col < b.Cols(); col++ {
		for i := 0; i < b.Rows(); i++ {
			if b.At(0, col) != CellEmpty {
				t.Fatalf("top of column %d occupied too early", col)
			}
			if _, err := b.Place(P1, col); err != nil {
				t.Fatalf("place into column %d with free top failed: %v", col, err)
			}
		}
		if _, err := b.Place(P2, col); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("column %d full: expected ErrInvalidMove, got %v", col, err)
		}
	}
}

func TestPlaceRetractRestoresBoard(t *testing.T) {
	b := NewBoard(6, 7)
	seq := []struct {
		p   Player
		col int
	}{{P1, 3}, {P2, 3}, {P1, 4}, {P2, 0}, {P1, 3}}
	for _, m := range seq {
		if _, err := b.Place(m.p, m.col); err != nil {
			t.Fatalf("setup place: %v", err)
		}
	}
	for col := 0; col < b.Cols(); col++ {
		before := b.Clone()
		row, err := b.Place(P2, col)
		if err != nil {
			t.Fatalf("place col %d: %v", col, err)
		}
		b.Retract(row, col)
		if !b.Equal(before) {
			t.Fatalf("place+retract on col %d changed the board", col)
		}
	}
}

func TestRetractOutsideBoardPanics(t *testing.T) {
	b := NewBoard(6, 7)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	b.Retract(0, 7)
}

func TestEvaluateStatusEmptyBoardRunning(t *testing.T) {
	rep := NewBoard(6, 7).EvaluateStatus()
	if rep.Status.Kind != Running {
		t.Fatalf("expected running, got %s", rep.Status)
	}
	if len(rep.Winning) != 0 || rep.Score != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestEvaluateStatusVerticalWin(t *testing.T) {
	b := NewBoard(6, 7)
	for i := 0; i < 3; i++ {
		b.Place(P1, 3)
		b.Place(P2, 0)
	}
	if rep := b.EvaluateStatus(); rep.Status.Kind != Running {
		t.Fatalf("expected running after three pieces, got %s", rep.Status)
	}
	b.Place(P1, 3)
	rep := b.EvaluateStatus()
	if rep.Status.Kind != Won || rep.Status.Winner != P1 {
		t.Fatalf("expected P1 win, got %s", rep.Status)
	}
	want := [][2]int{{2, 3}, {3, 3}, {4, 3}, {5, 3}}
	if len(rep.Winning) != 4 {
		t.Fatalf("expected 4 winning cells, got %v", rep.Winning)
	}
	for i := range want {
		if rep.Winning[i] != want[i] {
			t.Fatalf("expected winning cells %v, got %v", want, rep.Winning)
		}
	}
}

func TestEvaluateStatusHorizontalWin(t *testing.T) {
	b := NewBoard(6, 7)
	for col := 1; col <= 4; col++ {
		b.Place(P2, col)
	}
	rep := b.EvaluateStatus()
	if rep.Status.Kind != Won || rep.Status.Winner != P2 {
		t.Fatalf("expected P2 win, got %s", rep.Status)
	}
	want := [][2]int{{5, 1}, {5, 2}, {5, 3}, {5, 4}}
	for i := range want {
		if rep.Winning[i] != want[i] {
			t.Fatalf("expected winning cells %v, got %v", want, rep.Winning)
		}
	}
}

func TestEvaluateStatusDiagonalWins(t *testing.T) {
	// Staircase rising to the right: P1 at (5,0) (4,1) (3,2) (2,3).
	b := NewBoard(6, 7)
	for col := 0; col < 4; col++ {
		for i := 0; i < col; i++ {
			b.Place(P2, col)
		}
		b.Place(P1, col)
	}
	rep := b.EvaluateStatus()
	if rep.Status.Kind != Won || rep.Status.Winner != P1 {
		t.Fatalf("expected P1 win, got %s", rep.Status)
	}
	// Scan reaches (2,3) first and finds the line through the up-left direction.
	want := [][2]int{{2, 3}, {3, 2}, {4, 1}, {5, 0}}
	for i := range want {
		if rep.Winning[i] != want[i] {
			t.Fatalf("expected winning cells %v, got %v", want, rep.Winning)
		}
	}

	// Mirror image: P2 at (2,0) (3,1) (4,2) (5,3).
	b = NewBoard(6, 7)
	for col := 0; col < 4; col++ {
		for i := 0; i < 3-col; i++ {
			b.Place(P1, col)
		}
		b.Place(P2, col)
	}
	rep = b.EvaluateStatus()
	if rep.Status.Kind != Won || rep.Status.Winner != P2 {
		t.Fatalf("expected P2 win, got %s", rep.Status)
	}
	want = [][2]int{{2, 0}, {3, 1}, {4, 2}, {5, 3}}
	for i := range want {
		if rep.Winning[i] != want[i] {
			t.Fatalf("expected winning cells %v, got %v", want, rep.Winning)
		}
	}
}

func TestEvaluateStatusTie(t *testing.T) {
	b := NewBoard(6, 7)
	for col := 0; col < 6; col++ {
		fillColumn(t, b, col)
	}
	for row := 5; row > 0; row-- {
		b.Place(drawPlayer(row, 6), 6)
	}
	rep := b.EvaluateStatus()
	if rep.Status.Kind != Running {
		t.Fatalf("one move from full: expected running, got %s", rep.Status)
	}
	b.Place(drawPlayer(0, 6), 6)
	rep = b.EvaluateStatus()
	if rep.Status.Kind != Tie {
		t.Fatalf("expected tie, got %s (winning %v)", rep.Status, rep.Winning)
	}
	if len(rep.Winning) != 0 {
		t.Fatalf("tie must not report winning cells, got %v", rep.Winning)
	}
}

func TestEvaluateStatusWinBeatsFullBoard(t *testing.T) {
	// 1x4 board filled by one player is both full and won.
	b := NewBoard(1, 4)
	for col := 0; col < 4; col++ {
		b.Place(P2, col)
	}
	rep := b.EvaluateStatus()
	if rep.Status.Kind != Won || rep.Status.Winner != P2 {
		t.Fatalf("expected win to take precedence over tie, got %s", rep.Status)
	}
}

func TestNonStandardBoardSizes(t *testing.T) {
	b := NewBoard(3, 3)
	for col := 0; col < 3; col++ {
		b.Place(P1, col)
	}
	if rep := b.EvaluateStatus(); rep.Status.Kind != Running {
		t.Fatalf("3x3 board cannot hold four in a row, got %s", rep.Status)
	}
	b = NewBoard(8, 9)
	for i := 0; i < 4; i++ {
		b.Place(P2, 8)
	}
	rep := b.EvaluateStatus()
	if rep.Status.Kind != Won || rep.Winning[0] != [2]int{4, 8} {
		t.Fatalf("expected vertical win on column 8, got %s %v", rep.Status, rep.Winning)
	}
}

func TestGridShape(t *testing.T) {
	b := NewBoard(2, 5)
	b.Place(P2, 4)
	grid := b.Grid()
	if len(grid) != 2 || len(grid[0]) != 5 {
		t.Fatalf("unexpected grid shape")
	}
	if grid[1][4] != int(P2) {
		t.Fatalf("expected P2 in bottom right, got %d", grid[1][4])
	}
}
