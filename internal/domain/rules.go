package domain

// direction is a scan vector in (row, column) steps.
type direction struct {
	deltaRow int
	deltaCol int
}

// horizontal, vertical, diagonal ascending and diagonal descending
var directions = [4]direction{
	{deltaRow: 0, deltaCol: 1},
	{deltaRow: 1, deltaCol: 0},
	{deltaRow: 1, deltaCol: 1},
	{deltaRow: -1, deltaCol: 1},
}

// CheckVictory scans the whole board for ToWin consecutive pieces of player.
func CheckVictory(board Board, player PlayerID) bool {
	_, found := FindRun(board, player)
	return found
}

// FindRun returns the cells of the first run of ToWin pieces of player found
// on the board, scanning every start cell whose run stays inside the grid.
func FindRun(board Board, player PlayerID) ([]Position, bool) {
	if !player.Valid() {
		return nil, false
	}
	marker := player.Marker()

	for _, d := range directions {
		for row := 0; row < board.rows; row++ {
			for col := 0; col < board.columns; col++ {
				endRow := row + d.deltaRow*(ToWin-1)
				endCol := col + d.deltaCol*(ToWin-1)
				if !board.InBounds(endRow, endCol) {
					continue
				}
				if runAt(board, row, col, d, marker) {
					run := make([]Position, ToWin)
					for i := range run {
						run[i] = Position{Row: row + d.deltaRow*i, Column: col + d.deltaCol*i}
					}
					return run, true
				}
			}
		}
	}

	return nil, false
}

func runAt(board Board, row, col int, d direction, marker Cell) bool {
	for i := 0; i < ToWin; i++ {
		if board.cells[board.index(row+d.deltaRow*i, col+d.deltaCol*i)] != marker {
			return false
		}
	}
	return true
}

// CheckVictoryAt only looks at lines passing through (row, column). After a
// drop this gives the same answer as CheckVictory as long as the board had no
// run before the drop.
func CheckVictoryAt(board Board, row, column int, player PlayerID) bool {
	if !player.Valid() || !board.InBounds(row, column) {
		return false
	}
	marker := player.Marker()
	if board.CellAt(row, column) != marker {
		return false
	}

	for _, d := range directions {
		count := 1 +
			board.countInDirection(row, column, d.deltaRow, d.deltaCol, marker) +
			board.countInDirection(row, column, -d.deltaRow, -d.deltaCol, marker)
		if count >= ToWin {
			return true
		}
	}

	return false
}
