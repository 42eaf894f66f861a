package domain

import "strings"

// Board is a gravity-fed grid. Row 0 is the bottom row, so pieces fill a
// column from index 0 upward.
type Board struct {
	rows    int
	columns int
	cells   []Cell
}

func NewBoard() Board {
	return Board{
		rows:    DefaultRows,
		columns: DefaultColumns,
		cells:   make([]Cell, DefaultRows*DefaultColumns),
	}
}

// NewBoardSize returns an empty board with the given dimensions.
func NewBoardSize(rows, columns int) (Board, error) {
	if rows < 1 || columns < 1 {
		return Board{}, ErrInvalidDimensions
	}
	return Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Cell, rows*columns),
	}, nil
}

func (b Board) Rows() int {
	return b.rows
}

func (b Board) Columns() int {
	return b.columns
}

func (b Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

// CellAt returns the content of a cell. Out-of-range coordinates read as Empty.
func (b Board) CellAt(row, column int) Cell {
	if !b.InBounds(row, column) {
		return Empty
	}
	return b.cells[b.index(row, column)]
}

// FillHeight is the number of pieces stacked in a column.
func (b Board) FillHeight(column int) int {
	if column < 0 || column >= b.columns {
		return 0
	}
	height := 0
	for row := 0; row < b.rows; row++ {
		if b.cells[b.index(row, column)] == Empty {
			break
		}
		height++
	}
	return height
}

func (b Board) IsColumnPlayable(column int) bool {
	if column < 0 || column >= b.columns {
		return false
	}

	// the top row is rows-1 since gravity fills from row 0
	return b.cells[b.index(b.rows-1, column)] == Empty
}

// DropPiece lets a piece fall to the lowest empty row of column and returns
// that row. The board is untouched on error.
func (b *Board) DropPiece(column int, cell Cell) (int, error) {
	if column < 0 || column >= b.columns {
		return -1, ErrColumnOutOfRange
	}

	for row := 0; row < b.rows; row++ {
		i := b.index(row, column)
		if b.cells[i] == Empty {
			b.cells[i] = cell
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

func (b Board) IsFull() bool {
	for c := 0; c < b.columns; c++ {
		if b.IsColumnPlayable(c) {
			return false
		}
	}

	return true
}

// Count returns how many cells hold the given value.
func (b Board) Count(cell Cell) int {
	count := 0
	for _, c := range b.cells {
		if c == cell {
			count++
		}
	}
	return count
}

// ValidMoves lists the playable columns from left to right.
func (b Board) ValidMoves() []int {
	validMoves := []int{}
	for col := 0; col < b.columns; col++ {
		if b.IsColumnPlayable(col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// this creates a deep copy of the board
func (b Board) Clone() Board {
	clone := Board{rows: b.rows, columns: b.columns}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

// String draws the board top row first, one line per row.
func (b Board) String() string {
	var s strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.columns; col++ {
			if col > 0 {
				s.WriteByte(' ')
			}
			s.WriteString(b.cells[b.index(row, col)].String())
		}
		if row > 0 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}

func (b Board) index(row, column int) int {
	return row*b.columns + column
}

// countInDirection counts consecutive cells equal to marker starting one step
// away from (row, column) along (deltaRow, deltaCol).
func (b Board) countInDirection(row, column, deltaRow, deltaCol int, marker Cell) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for b.InBounds(r, c) && b.cells[b.index(r, c)] == marker {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
