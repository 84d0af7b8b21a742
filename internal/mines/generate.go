package mines

// placeMines draws a row and a column from src until it lands on a cell
// without a mine. Termination relies on mineCount < width*height, which
// [GameParams.Validate] guarantees.
func (b *Board) placeMines(src Source) {
	for range b.mineCount {
		var i int
		for {
			x := src.IntN(b.height)
			y := src.IntN(b.width)
			i = b.index(x, y)
			if !b.cells[i].mine {
				break
			}
		}
		b.cells[i].mine = true
	}
}

// countAdjacent fills in the neighbour mine count of every safe cell and
// resets the hidden safe cell counter.
func (b *Board) countAdjacent() {
	b.remainingSafe = 0
	for x := range b.height {
		for y := range b.width {
			c := &b.cells[b.index(x, y)]
			if c.mine {
				continue
			}
			c.adjacent = int8(b.minesAround(x, y))
			b.remainingSafe++
		}
	}
}

func (b *Board) minesAround(x, y int) int {
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			xx, yy := x+dx, y+dy
			if (dx != 0 || dy != 0) && b.IsValid(xx, yy) &&
				b.cells[b.index(xx, yy)].mine {
				n++
			}
		}
	}
	return n
}
