package mines

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Source supplies the randomness used for mine placement.
// [*math/rand/v2.Rand] satisfies it.
type Source interface {
	IntN(n int) int
}

type RevealOutcome int

const (
	NoOp RevealOutcome = iota
	Revealed
	MineHit
)

func (o RevealOutcome) String() string {
	switch o {
	case NoOp:
		return "noop"
	case Revealed:
		return "revealed"
	case MineHit:
		return "mine_hit"
	default:
		return "unknown"
	}
}

type GameState int

const (
	InProgress GameState = iota
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [GameState] implements [encoding.TextMarshaler]
func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type cell struct {
	mine     bool
	revealed bool
	flagged  bool
	adjacent int8
}

// Board is the state of a single game. Coordinates are (row, column): x
// indexes rows in [0, height), y indexes columns in [0, width). A Board is
// not safe for concurrent use.
type Board struct {
	width, height int
	mineCount     int
	cells         []cell
	remainingSafe int
	exploded      int
}

// New places mineCount mines on a width x height board using src and
// computes the adjacency counts.
func New(width, height, mineCount int, src Source) (*Board, error) {
	params := GameParams{Width: width, Height: height, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
		cells:     make([]cell, width*height),
		exploded:  -1,
	}
	b.placeMines(src)
	b.countAdjacent()

	Log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"mines":  mineCount,
	}).Debug("board generated")

	return b, nil
}

func (b *Board) Width() int         { return b.width }
func (b *Board) Height() int        { return b.height }
func (b *Board) MineCount() int     { return b.mineCount }
func (b *Board) RemainingSafe() int { return b.remainingSafe }

func (b *Board) Params() GameParams {
	return GameParams{Width: b.width, Height: b.height, MineCount: b.mineCount}
}

func (b *Board) index(x, y int) int {
	return x*b.width + y
}

func (b *Board) IsValid(x, y int) bool {
	return 0 <= x && x < b.height && 0 <= y && y < b.width
}

// RevealCell opens the cell at (x, y). Opening a cell with no adjacent mines
// also opens its neighbours, spreading through the whole zero region and
// its numbered border. Flagged cells are never opened.
func (b *Board) RevealCell(x, y int) RevealOutcome {
	if !b.IsValid(x, y) {
		return NoOp
	}
	i := b.index(x, y)
	c := &b.cells[i]
	if c.revealed || c.flagged {
		return NoOp
	}

	c.revealed = true
	if c.mine {
		b.exploded = i
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("mine hit")
		return MineHit
	}
	b.remainingSafe--

	if c.adjacent == 0 {
		b.flood(i)
	}
	return Revealed
}

// flood opens everything reachable from the zero cell start. Cells are
// opened when queued, so each one is queued at most once.
func (b *Board) flood(start int) {
	todo := newCelltodo(len(b.cells))
	todo.add(start)
	for {
		i, ok := todo.pop()
		if !ok {
			return
		}
		x, y := i/b.width, i%b.width
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				xx, yy := x+dx, y+dy
				if !b.IsValid(xx, yy) {
					continue
				}
				j := b.index(xx, yy)
				n := &b.cells[j]
				if n.revealed || n.flagged {
					continue
				}
				// a zero cell has no mined neighbours
				n.revealed = true
				b.remainingSafe--
				if n.adjacent == 0 {
					todo.add(j)
				}
			}
		}
	}
}

// ToggleFlag flags or unflags a hidden cell. Revealed cells and
// out-of-range coordinates are ignored.
func (b *Board) ToggleFlag(x, y int) {
	if !b.IsValid(x, y) {
		return
	}
	c := &b.cells[b.index(x, y)]
	if !c.revealed {
		c.flagged = !c.flagged
	}
}

// ChordCell opens every hidden, unflagged neighbour of a revealed digit once
// the digit is satisfied by adjacent flags.
func (b *Board) ChordCell(x, y int) RevealOutcome {
	if !b.IsValid(x, y) {
		return NoOp
	}
	c := b.cells[b.index(x, y)]
	if !c.revealed || c.mine {
		return NoOp
	}

	flags := 0
	targets := make([][2]int, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			xx, yy := x+dx, y+dy
			if (dx == 0 && dy == 0) || !b.IsValid(xx, yy) {
				continue
			}
			n := b.cells[b.index(xx, yy)]
			if n.flagged {
				flags++
			} else if !n.revealed {
				targets = append(targets, [2]int{xx, yy})
			}
		}
	}
	if flags != int(c.adjacent) {
		return NoOp
	}

	outcome := NoOp
	for _, t := range targets {
		switch b.RevealCell(t[0], t[1]) {
		case MineHit:
			outcome = MineHit
		case Revealed:
			if outcome == NoOp {
				outcome = Revealed
			}
		}
	}
	return outcome
}

func (b *Board) CheckWin() bool {
	return b.remainingSafe == 0
}

func (b *Board) CheckMined(x, y int) bool {
	return b.cells[b.index(x, y)].mine
}

// State reports Lost once any mine was opened, even if every safe cell was
// opened as well.
func (b *Board) State() GameState {
	switch {
	case b.exploded >= 0:
		return Lost
	case b.CheckWin():
		return Won
	default:
		return InProgress
	}
}

func (b *Board) Flags() int {
	n := 0
	for _, c := range b.cells {
		if c.flagged && !c.revealed {
			n++
		}
	}
	return n
}

// recountSafe scans the grid for hidden safe cells. It must always agree
// with remainingSafe.
func (b *Board) recountSafe() int {
	n := 0
	for _, c := range b.cells {
		if !c.mine && !c.revealed {
			n++
		}
	}
	return n
}
