package universe

import (
	"testing"
)

func deadUniverse(width int, height int) *Universe {
	u := New(width, height)
	u.Kill()
	return u
}

func aliveSet(u *Universe) map[[2]int]bool {
	s := map[[2]int]bool{}
	for row := 0; row < u.Height(); row++ {
		for column := 0; column < u.Width(); column++ {
			if u.GetCells()[u.index(row, column)] == Alive {
				s[[2]int{row, column}] = true
			}
		}
	}
	return s
}

func assertAlive(t *testing.T, u *Universe, expected [][2]int) {
	t.Helper()
	got := aliveSet(u)
	if len(got) != len(expected) {
		t.Fatalf("live cells: got %v, expected %v", len(got), len(expected))
	}
	for _, p := range expected {
		if !got[p] {
			t.Fatalf("cell %v expected to be alive, got\n%s", p, u)
		}
	}
}

func TestNewSeedPattern(t *testing.T) {
	tests := []struct {
		width  int
		height int
	}{
		{1, 1},
		{5, 4},
		{16, 9},
		{0, 3},
		{3, 0},
	}
	for _, tt := range tests {
		u := New(tt.width, tt.height)
		cells := u.GetCells()
		if len(cells) != tt.width*tt.height {
			t.Fatalf("%vx%v: got %v cells", tt.width, tt.height, len(cells))
		}
		for i, c := range cells {
			expected := Dead
			if i%2 == 0 || i%7 == 0 {
				expected = Alive
			}
			if c != expected {
				t.Fatalf("%vx%v: cell %v is %v, expected %v", tt.width, tt.height, i, c, expected)
			}
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(20, 10), New(20, 10)
	if a.String() != b.String() {
		t.Fatalf("seed patterns differ:\n%s\n%s", a, b)
	}
}

func TestResizeKillsAllCells(t *testing.T) {
	u := New(6, 4)
	u.ToggleCell(1, 1)
	u.Tick()

	u.SetWidth(9)
	if u.Width() != 9 || u.Height() != 4 {
		t.Fatalf("got %vx%v, expected 9x4", u.Width(), u.Height())
	}
	if len(u.GetCells()) != 36 || u.LiveCells() != 0 {
		t.Fatalf("after SetWidth: %v cells, %v alive", len(u.GetCells()), u.LiveCells())
	}
	if u.Generation() != 0 {
		t.Fatalf("generation is %v after resize", u.Generation())
	}

	u.SetCells([][2]int{{0, 0}, {3, 8}})
	u.SetHeight(3)
	if u.Width() != 9 || u.Height() != 3 {
		t.Fatalf("got %vx%v, expected 9x3", u.Width(), u.Height())
	}
	if len(u.GetCells()) != 27 || u.LiveCells() != 0 {
		t.Fatalf("after SetHeight: %v cells, %v alive", len(u.GetCells()), u.LiveCells())
	}

	// the scratch buffer follows the new size
	u.SetCells([][2]int{{1, 1}, {1, 2}, {1, 3}})
	u.Tick()
	assertAlive(t, u, [][2]int{{0, 2}, {1, 2}, {2, 2}})
}

func TestToggleCell(t *testing.T) {
	u := New(7, 5)
	before := u.Cells()

	u.ToggleCell(2, 3)
	after := u.Cells()
	for i := range before {
		flipped := before[i] != after[i]
		if flipped != (i == 2*7+3) {
			t.Fatalf("cell %v flipped=%v", i, flipped)
		}
	}

	u.ToggleCell(2, 3)
	if string(u.Cells()) != string(before) {
		t.Fatalf("double toggle does not restore the grid")
	}
}

func TestClearCellsInverts(t *testing.T) {
	u := New(8, 8)
	before := u.Cells()

	u.ClearCells()
	for i, b := range u.Cells() {
		if b != 1-before[i] {
			t.Fatalf("cell %v was not inverted", i)
		}
	}

	u.ClearCells()
	if string(u.Cells()) != string(before) {
		t.Fatalf("double clear does not restore the grid")
	}
}

func TestKill(t *testing.T) {
	u := New(8, 8)
	u.Tick()
	u.Kill()
	if u.LiveCells() != 0 || u.Generation() != 0 {
		t.Fatalf("live cells %v, generation %v", u.LiveCells(), u.Generation())
	}
}

func TestSetCellsIdempotent(t *testing.T) {
	a := [][2]int{{0, 0}, {1, 2}, {3, 3}}
	b := [][2]int{{1, 2}, {3, 3}, {2, 0}}

	twice := deadUniverse(5, 5)
	twice.SetCells(a)
	twice.SetCells(b)

	union := deadUniverse(5, 5)
	union.SetCells([][2]int{{2, 0}, {3, 3}, {0, 0}, {1, 2}})

	if twice.String() != union.String() {
		t.Fatalf("got\n%s\nexpected\n%s", twice, union)
	}
}

func TestCellsExport(t *testing.T) {
	u := New(3, 2)
	b := u.Cells()
	expected := []byte{1, 0, 1, 0, 1, 0}
	if string(b) != string(expected) {
		t.Fatalf("got %v, expected %v", b, expected)
	}

	b[1] = 1
	if u.GetCells()[1] != Dead {
		t.Fatalf("export aliases the universe cells")
	}
}

func TestString(t *testing.T) {
	u := New(3, 2)
	if s := u.String(); s != "101\n010\n" {
		t.Fatalf("got %q", s)
	}
	if s := New(0, 0).String(); s != "" {
		t.Fatalf("got %q for empty universe", s)
	}
}

func TestIsolatedCellDies(t *testing.T) {
	u := deadUniverse(3, 3)
	u.SetCells([][2]int{{1, 1}})
	u.Tick()
	if u.LiveCells() != 0 {
		t.Fatalf("expected empty grid, got\n%s", u)
	}
	if u.Generation() != 1 {
		t.Fatalf("generation is %v", u.Generation())
	}
}

func TestNeighboursWrapAround(t *testing.T) {
	u := deadUniverse(3, 3)
	u.SetCells([][2]int{{0, 0}})
	for row := 0; row < 3; row++ {
		for column := 0; column < 3; column++ {
			n := u.liveNeighbourCount(row, column)
			expected := 1
			if row == 0 && column == 0 {
				expected = 0
			}
			if n != expected {
				t.Fatalf("cell (%v,%v) has %v live neighbours, expected %v", row, column, n, expected)
			}
		}
	}
	u.Tick()
	if u.LiveCells() != 0 {
		t.Fatalf("expected empty grid, got\n%s", u)
	}
}

func TestNextState(t *testing.T) {
	tests := []struct {
		cell      Cell
		neighbors int
		expected  Cell
	}{
		{Alive, 0, Dead},
		{Alive, 1, Dead},
		{Alive, 2, Alive},
		{Alive, 3, Alive},
		{Alive, 4, Dead},
		{Alive, 8, Dead},
		{Dead, 2, Dead},
		{Dead, 3, Alive},
		{Dead, 4, Dead},
		{Dead, 0, Dead},
	}
	for _, tt := range tests {
		if got := nextState(tt.cell, tt.neighbors); got != tt.expected {
			t.Errorf("nextState(%v, %v) = %v, expected %v", tt.cell, tt.neighbors, got, tt.expected)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	u := deadUniverse(5, 5)
	u.SetCells([][2]int{{1, 2}, {2, 2}, {3, 2}})

	u.Tick()
	assertAlive(t, u, [][2]int{{2, 1}, {2, 2}, {2, 3}})

	u.Tick()
	assertAlive(t, u, [][2]int{{1, 2}, {2, 2}, {3, 2}})
}

func TestBlockIsStable(t *testing.T) {
	u := deadUniverse(6, 6)
	block := [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	u.SetCells(block)
	for i := 0; i < 5; i++ {
		u.Tick()
	}
	assertAlive(t, u, block)
}

func TestGliderTranslates(t *testing.T) {
	glider, ok := LookupTemplate("glider")
	if !ok {
		t.Fatalf("glider template is not registered")
	}
	u := deadUniverse(10, 10)
	u.SettleTemplate(glider, 2, 2)
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	expected := make([][2]int, 0, len(glider.Coordinates))
	for _, p := range glider.Coordinates {
		expected = append(expected, [2]int{p[0] + 3, p[1] + 3})
	}
	assertAlive(t, u, expected)
}

func TestGliderCrossesEdge(t *testing.T) {
	glider, _ := LookupTemplate("glider")
	u := deadUniverse(8, 8)
	u.SettleTemplate(glider, 0, 0)
	// 32 generations move the glider once around an 8x8 torus
	for i := 0; i < 32; i++ {
		u.Tick()
	}
	assertAlive(t, u, glider.Coordinates)
}
