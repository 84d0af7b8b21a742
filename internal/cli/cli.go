package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

var Log = logrus.New()

var errNotANumber = errors.New("not a number")

// Game drives boards from a text stream, one whitespace separated token
// at a time.
type Game struct {
	in  *bufio.Scanner
	out io.Writer
	src mines.Source
	err error
}

func New(in io.Reader, out io.Writer, src mines.Source) *Game {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Game{in: scanner, out: out, src: src}
}

func (g *Game) printf(format string, a ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.out, format, a...)
}

func (g *Game) readInt() (int, error) {
	if !g.in.Scan() {
		if err := g.in.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	n, err := strconv.Atoi(g.in.Text())
	if err != nil {
		return 0, errNotANumber
	}
	return n, nil
}

// readChoice reads until it gets a number in [lo, hi].
func (g *Game) readChoice(lo, hi int) (int, error) {
	for {
		n, err := g.readInt()
		if err != nil && !errors.Is(err, errNotANumber) {
			return 0, err
		}
		if err == nil && lo <= n && n <= hi {
			return n, nil
		}
		g.printf("Invalid choice. Please select again: ")
	}
}

// readCell reads a row and a column until they name a cell of b.
func (g *Game) readCell(b *mines.Board) (int, int, error) {
	for {
		x, errX := g.readInt()
		if errX != nil && !errors.Is(errX, errNotANumber) {
			return 0, 0, errX
		}
		y, errY := g.readInt()
		if errY != nil && !errors.Is(errY, errNotANumber) {
			return 0, 0, errY
		}
		if errX == nil && errY == nil && b.IsValid(x, y) {
			return x, y, nil
		}
		g.printf("Invalid choice. Please select again: ")
	}
}

// Run shows the main menu until the player exits or the input ends.
func (g *Game) Run() error {
	for {
		g.printf("Main Menu\n1. Play\n2. Help\n3. Exit\nEnter your choice: ")
		choice, err := g.readInt()
		if errors.Is(err, io.EOF) {
			g.printf("\n")
			return g.err
		}
		if err != nil && !errors.Is(err, errNotANumber) {
			return err
		}

		switch {
		case err != nil:
			g.printf("Invalid choice. Please enter 1, 2, or 3.\n")
		case choice == 1:
			if err := g.play(); errors.Is(err, io.EOF) {
				g.printf("\n")
				return g.err
			} else if err != nil {
				return err
			}
		case choice == 2:
			g.printf("%s", helpText)
		case choice == 3:
			g.printf("Exiting game.\n")
			return g.err
		default:
			g.printf("Invalid choice. Please enter 1, 2, or 3.\n")
		}
		if g.err != nil {
			return g.err
		}
	}
}

const helpText = `Help:
- Choose 'Open a cell' to reveal what is underneath that cell.
- Choose 'Flag/Unflag a cell' to mark a cell you suspect contains a mine.
- Choose 'Chord a cell' on an opened number whose mines are all flagged to open its other neighbours.
- Uncover all cells without mines to win the game.
- Hitting a mine results in a game over.
`
