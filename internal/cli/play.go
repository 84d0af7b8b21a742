package cli

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

func (g *Game) selectParams() (mines.GameParams, error) {
	g.printf("Select Difficulty:\n")
	for _, d := range []mines.Difficulty{mines.Easy, mines.Medium, mines.Hard} {
		p, _ := d.Params()
		g.printf("%d) %s (grid size: %dx%d, No. of mines = %d)\n",
			int(d), displayName(d), p.Width, p.Height, p.MineCount)
	}
	g.printf("%d) %s\n", int(mines.Custom), displayName(mines.Custom))
	g.printf("Enter your choice: ")

	choice, err := g.readChoice(int(mines.Easy), int(mines.Custom))
	if err != nil {
		return mines.GameParams{}, err
	}
	d := mines.Difficulty(choice)
	if params, ok := d.Params(); ok {
		return params, nil
	}

	g.printf(" Please enter the row/column (%d~%d): \n", mines.MinCustomSize, mines.MaxCustomSize)
	n, err := g.readChoice(mines.MinCustomSize, mines.MaxCustomSize)
	if err != nil {
		return mines.GameParams{}, err
	}
	params, err := mines.CustomParams(n)
	if err != nil {
		return mines.GameParams{}, err
	}
	g.printf("Number of mines (integer division of total squares by 6): %d\n", params.MineCount)
	return params, nil
}

func displayName(d mines.Difficulty) string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (g *Game) display(b *mines.Board, expose bool) {
	g.printf("Remaining Safe Squares: %d\n", b.RemainingSafe())
	if g.err != nil {
		return
	}
	g.err = b.Grid(expose).Render(g.out, b.Width())
}

const actionMenu = "Choose an action:\n" +
	"1. Open a cell\n" +
	"2. Flag/Unflag a cell\n" +
	"3. Exit to main menu\n" +
	"4. Chord a cell\n"

const (
	actionOpen = iota + 1
	actionFlag
	actionExit
	actionChord
)

// play runs one game and returns to the main menu once it is won, lost or
// abandoned.
func (g *Game) play() error {
	params, err := g.selectParams()
	if err != nil {
		return err
	}
	b, err := params.NewBoard(g.src)
	if err != nil {
		return err
	}
	log := Log.WithField("params", params.String())
	log.Debug("game started")

	for {
		g.display(b, false)
		g.printf("%s", actionMenu)
		if g.err != nil {
			return g.err
		}

		action, err := g.readChoice(actionOpen, actionChord)
		if err != nil {
			return err
		}

		var outcome mines.RevealOutcome
		switch action {
		case actionOpen:
			g.printf("Enter row and column number to select the square: ")
			x, y, err := g.readCell(b)
			if err != nil {
				return err
			}
			outcome = b.RevealCell(x, y)
		case actionFlag:
			g.printf("Enter row and column numbers to flag/unflag: ")
			x, y, err := g.readCell(b)
			if err != nil {
				return err
			}
			b.ToggleFlag(x, y)
			continue
		case actionChord:
			g.printf("Enter row and column numbers to chord: ")
			x, y, err := g.readCell(b)
			if err != nil {
				return err
			}
			outcome = b.ChordCell(x, y)
		case actionExit:
			log.Debug("game abandoned")
			return nil
		}

		switch b.State() {
		case mines.Lost:
			g.printf("Game Over! You hit a mine!\n")
			g.display(b, true)
		case mines.Won:
			g.printf("Congratulations! You cleared the minefield!\n")
			g.display(b, false)
		default:
			continue
		}
		log.WithFields(logrus.Fields{
			"state":   b.State().String(),
			"outcome": outcome.String(),
		}).Debug("game over")
		return g.err
	}
}
