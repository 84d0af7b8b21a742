package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

// diagonal fills the main diagonal of a square board first, then the
// diagonals right of it.
type diagonal struct {
	calls int
}

func (d *diagonal) IntN(n int) int {
	k := d.calls / 2
	d.calls++
	if d.calls%2 == 1 {
		return k % n
	}
	return (k + k/n) % n
}

func run(t *testing.T, input string) string {
	t.Helper()
	var out strings.Builder
	require.NoError(t, New(strings.NewReader(input), &out, &diagonal{}).Run())
	return out.String()
}

func TestExitAndEndOfInput(t *testing.T) {
	out := run(t, "3")
	assert.Equal(t, "Main Menu\n1. Play\n2. Help\n3. Exit\nEnter your choice: Exiting game.\n", out)

	out = run(t, "")
	assert.Equal(t, "Main Menu\n1. Play\n2. Help\n3. Exit\nEnter your choice: \n", out)

	out = run(t, "1 1")
	assert.Contains(t, out, "Choose an action:")
	assert.NotContains(t, out, "Exiting game.")
}

func TestMainMenuRejectsInvalidChoices(t *testing.T) {
	out := run(t, "9 abc 2 3")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please enter 1, 2, or 3.\n"))
	assert.Contains(t, out, "Help:\n- Choose 'Open a cell' to reveal what is underneath that cell.\n")
	assert.True(t, strings.HasSuffix(out, "Exiting game.\n"))
}

func TestDifficultyMenu(t *testing.T) {
	out := run(t, "1 0 1 3 3")
	assert.Contains(t, out, "1) Easy (grid size: 6x6, No. of mines = 6)\n")
	assert.Contains(t, out, "2) Medium (grid size: 12x12, No. of mines = 24)\n")
	assert.Contains(t, out, "3) Hard (grid size: 25x25, No. of mines = 104)\n")
	assert.Contains(t, out, "4) Custom\n")
	assert.Equal(t, 1, strings.Count(out, "Invalid choice. Please select again: "))
	assert.Contains(t, out, "Remaining Safe Squares: 30\n")
}

func TestCustomSize(t *testing.T) {
	out := run(t, "1 4 5 26 7 3 3")
	assert.Contains(t, out, " Please enter the row/column (6~25): \n")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please select again: "))
	assert.Contains(t, out, "Number of mines (integer division of total squares by 6): 8\n")
	assert.Contains(t, out, "Remaining Safe Squares: 41\n")
}

func TestHitMine(t *testing.T) {
	out := run(t, "1 1 1 6 0 x 1 0 0 3")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please select again: "))

	before, after, found := strings.Cut(out, "Game Over! You hit a mine!\n")
	require.True(t, found)
	assert.NotContains(t, before, "*")
	assert.Equal(t, 6, strings.Count(after, " * |"), "every mine exposed")
	assert.NotContains(t, out, "Congratulations")
	assert.True(t, strings.HasSuffix(out, "Exiting game.\n"))
}

func TestFlagAndChord(t *testing.T) {
	out := run(t, "1 1 1 0 1 2 0 0 2 1 1 4 0 1 3 3")
	assert.Contains(t, out, "Remaining Safe Squares: 29\n")
	assert.Contains(t, out, " 0 | F | 2 |   |")
	assert.Contains(t, out, "Enter row and column numbers to chord: ")
	assert.Contains(t, out, "Remaining Safe Squares: 26\n")
	assert.NotContains(t, out, "Game Over")
}

// winningMoves opens every safe cell the flood fill has not reached yet.
func winningMoves(t *testing.T) string {
	t.Helper()
	b, err := mines.New(6, 6, 6, &diagonal{})
	require.NoError(t, err)

	var moves strings.Builder
	for x := range b.Height() {
		for y := range b.Width() {
			if b.CheckMined(x, y) || b.Cell(x, y) != mines.Unknown {
				continue
			}
			b.RevealCell(x, y)
			fmt.Fprintf(&moves, "1 %d %d ", x, y)
		}
	}
	require.True(t, b.CheckWin())
	return moves.String()
}

func TestWin(t *testing.T) {
	out := run(t, "1 1 "+winningMoves(t)+"3")

	before, after, found := strings.Cut(out, "Congratulations! You cleared the minefield!\n")
	require.True(t, found)
	assert.NotContains(t, before, "Game Over")
	assert.Contains(t, after, "Remaining Safe Squares: 0\n")
	assert.NotContains(t, after, "*", "mines stay hidden after a win")
	assert.True(t, strings.HasSuffix(out, "Exiting game.\n"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteErrorStopsTheGame(t *testing.T) {
	err := New(strings.NewReader("2 2 2"), failingWriter{}, &diagonal{}).Run()
	assert.EqualError(t, err, "broken pipe")
}
