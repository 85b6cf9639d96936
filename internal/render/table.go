package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/prajithkb/connect4js/internal/game"
)

// Board draws the grid as a table: column indexes across the top, row
// indexes down the left. Winning cells are bracketed.
func Board(w io.Writer, b *game.Board, winning [][2]int) {
	win := make(map[[2]int]bool, len(winning))
	for _, c := range winning {
		win[c] = true
	}

	table := tablewriter.NewWriter(w)
	header := make([]string, 0, b.Cols()+1)
	header = append(header, "")
	for c := 0; c < b.Cols(); c++ {
		header = append(header, strconv.Itoa(c))
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetRowLine(true)

	for r := 0; r < b.Rows(); r++ {
		row := make([]string, 0, b.Cols()+1)
		row = append(row, strconv.Itoa(r))
		for c := 0; c < b.Cols(); c++ {
			row = append(row, cellText(b.At(r, c), win[[2]int{r, c}]))
		}
		table.Append(row)
	}
	table.Render()
}

func cellText(cell game.Cell, winning bool) string {
	p, ok := cell.Player()
	if !ok {
		return " "
	}
	if winning {
		return "[" + p.Piece() + "]"
	}
	return p.Piece()
}
