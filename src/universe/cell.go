package universe

//Cell is the state of one grid position
//Dead is 0 and Alive is 1, so the neighbour count is a plain sum of Cell values
//no other value is ever stored
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Toggle flips the cell between Dead and Alive
func (c *Cell) Toggle() {
	*c ^= Alive
}

func (c Cell) String() string {
	if c == Dead {
		return "0"
	}
	return "1"
}
