package universe

import "strings"

/*
	Universe is a toroidal Game of Life field
	cells are stored row-major in one flat slice, index = row*width + column
	Tick computes the next generation into the scratch buffer and swaps the buffers,
	so every cell is evaluated against the previous generation only

	Universe is not safe for concurrent use, it expects a single owner
*/
type Universe struct {
	width      int
	height     int
	cells      []Cell
	next       []Cell
	generation int
}

//New creates the universe seeded with the deterministic pattern:
//cell i is Alive when i is divisible by 2 or by 7
func New(width int, height int) *Universe {
	u := &Universe{width: width, height: height}
	u.cells = createCells(width, height)
	u.next = createCells(width, height)
	for i := range u.cells {
		if i%2 == 0 || i%7 == 0 {
			u.cells[i] = Alive
		}
	}
	return u
}

//Width returns the number of columns
func (u *Universe) Width() int {
	return u.width
}

//Height returns the number of rows
func (u *Universe) Height() int {
	return u.height
}

//Generation returns the number of ticks since construction or the last resize
func (u *Universe) Generation() int {
	return u.generation
}

//SetWidth changes the width, all cells become Dead
func (u *Universe) SetWidth(width int) {
	u.width = width
	u.reset()
}

//SetHeight changes the height, all cells become Dead
func (u *Universe) SetHeight(height int) {
	u.height = height
	u.reset()
}

//SetCells makes every cell from the {row, column} list Alive
//the other cells are left untouched
func (u *Universe) SetCells(rc [][2]int) {
	for _, p := range rc {
		u.cells[u.index(p[0], p[1])] = Alive
	}
}

//GetCells returns the backing cells slice
//the slice must be treated as read-only and is valid until the next mutating call
func (u *Universe) GetCells() []Cell {
	return u.cells
}

//Cells exports the grid as bytes, one byte per cell (0 or 1), row-major
//the returned slice is a copy owned by the caller
func (u *Universe) Cells() []byte {
	b := make([]byte, len(u.cells))
	for i, c := range u.cells {
		b[i] = byte(c)
	}
	return b
}

//ToggleCell flips the cell at row, column
func (u *Universe) ToggleCell(row int, column int) {
	u.cells[u.index(row, column)].Toggle()
}

//ClearCells inverts every cell: Dead becomes Alive and Alive becomes Dead
//use Kill to make all cells Dead
func (u *Universe) ClearCells() {
	for i := range u.cells {
		u.cells[i].Toggle()
	}
}

//Kill makes all cells Dead and resets the generation counter
func (u *Universe) Kill() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
	u.generation = 0
}

//LiveCells calculates the count of live cells
func (u *Universe) LiveCells() int {
	live := 0
	for _, c := range u.cells {
		live += int(c)
	}
	return live
}

//Tick calculates the next generation for the entire universe
func (u *Universe) Tick() {
	for row := 0; row < u.height; row++ {
		for column := 0; column < u.width; column++ {
			idx := u.index(row, column)
			u.next[idx] = nextState(u.cells[idx], u.liveNeighbourCount(row, column))
		}
	}
	u.cells, u.next = u.next, u.cells
	u.generation++
}

//String renders the grid as rows of '0' (Dead) and '1' (Alive), each row ends with a line feed
func (u *Universe) String() string {
	var b strings.Builder
	b.Grow(len(u.cells) + u.height)
	for row := 0; row < u.height; row++ {
		for _, c := range u.cells[row*u.width : (row+1)*u.width] {
			if c == Dead {
				b.WriteByte('0')
			} else {
				b.WriteByte('1')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//index returns the flat index of row, column
func (u *Universe) index(row int, column int) int {
	return row*u.width + column
}

//liveNeighbourCount sums the 8 neighbours of row, column with wrap-around on both axes
func (u *Universe) liveNeighbourCount(row int, column int) int {
	north := (row - 1 + u.height) % u.height
	south := (row + 1) % u.height
	west := (column - 1 + u.width) % u.width
	east := (column + 1) % u.width

	c := u.cells
	count := c[u.index(north, west)] +
		c[u.index(north, column)] +
		c[u.index(north, east)] +
		c[u.index(row, west)] +
		c[u.index(row, east)] +
		c[u.index(south, west)] +
		c[u.index(south, column)] +
		c[u.index(south, east)]
	return int(count)
}

//nextState applies the B3/S23 rule to one cell
func nextState(c Cell, liveNeighbours int) Cell {
	switch {
	case c == Alive && liveNeighbours < 2:
		return Dead
	case c == Alive && (liveNeighbours == 2 || liveNeighbours == 3):
		return Alive
	case c == Alive && liveNeighbours > 3:
		return Dead
	case c == Dead && liveNeighbours == 3:
		return Alive
	}
	return c
}

//reset reallocates both buffers for the current dimensions, all cells Dead
func (u *Universe) reset() {
	u.cells = createCells(u.width, u.height)
	u.next = createCells(u.width, u.height)
	u.generation = 0
}

//createCells allocates width*height Dead cells
func createCells(width int, height int) []Cell {
	return make([]Cell, width*height)
}
