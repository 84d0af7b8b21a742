package mines

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * Each item of a Grid is one of the following values:
	 *
	 *  - 0 to 8 mean the cell is open and has a surrounding mine count.
	 *  - -1 means the cell is flagged.
	 *  - -2 means the cell is hidden.
	 *  - 65 means the cell is an opened mine.
	 *
	 * Exposed grids (after the game is lost) additionally use 64 for a
	 * flag on a mine, 66 for a flag on a safe cell and 67 for a mine
	 * nobody flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged, s == CorrectlyFlagged:
		return "F"
	case s == ExplodedMine, s == UnflaggedMine:
		return "*"
	case s == FalselyFlagged:
		return "X"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the row-major player view of a board.
type Grid []CellState

// Grid builds the player view. With expose set, hidden mines and flag
// correctness are shown as well; the board itself is not modified.
func (b *Board) Grid(expose bool) Grid {
	g := make(Grid, len(b.cells))
	for i, c := range b.cells {
		switch {
		case c.revealed && c.mine:
			g[i] = ExplodedMine
		case c.revealed:
			g[i] = CellState(c.adjacent)
		case c.flagged && expose && c.mine:
			g[i] = CorrectlyFlagged
		case c.flagged && expose:
			g[i] = FalselyFlagged
		case c.flagged:
			g[i] = Flagged
		case expose && c.mine:
			g[i] = UnflaggedMine
		default:
			g[i] = Unknown
		}
	}
	return g
}

// Cell returns the player view of a single cell.
func (b *Board) Cell(x, y int) CellState {
	c := b.cells[b.index(x, y)]
	switch {
	case c.revealed && c.mine:
		return ExplodedMine
	case c.revealed:
		return CellState(c.adjacent)
	case c.flagged:
		return Flagged
	default:
		return Unknown
	}
}

func writeRule(b *strings.Builder, width int) {
	b.WriteString("   +")
	for range width {
		b.WriteString("---+")
	}
	b.WriteString("\n")
}

// Render writes g as a bordered text table with column numbers on top and
// row numbers on the left.
func (g Grid) Render(w io.Writer, width int) error {
	var b strings.Builder

	b.WriteString("    ")
	for y := range width {
		fmt.Fprintf(&b, "%2d  ", y)
	}
	b.WriteString("\n")
	writeRule(&b, width)

	for x := range len(g) / width {
		fmt.Fprintf(&b, "%2d |", x)
		for y := range width {
			fmt.Fprintf(&b, " %s |", g[x*width+y])
		}
		b.WriteString("\n")
		writeRule(&b, width)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
