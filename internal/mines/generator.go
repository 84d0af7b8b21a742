package mines

import (
	"fmt"
	"math"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func (p GameParams) Validate() error {
	w, h, mc := p.Unpack()
	fail := func(reason string) error {
		return &ConfigError{Width: w, Height: h, MineCount: mc, Reason: reason}
	}
	switch {
	case w <= 0:
		return fail("width must be positive")
	case h <= 0:
		return fail("height must be positive")
	case mc < 0:
		return fail("mine count must not be negative")
	case w > math.MaxInt/h:
		return fail("board has too many cells")
	case mc >= w*h:
		return fail("mine count must be less than the number of cells")
	}
	return nil
}

func (p GameParams) NewBoard(src Source) (*Board, error) {
	return New(p.Width, p.Height, p.MineCount, src)
}

// Difficulty reports the preset p corresponds to, or [Custom].
func (p GameParams) Difficulty() Difficulty {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if preset, _ := d.Params(); preset == p {
			return d
		}
	}
	return Custom
}

type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
	Custom
)

const (
	MinCustomSize = 6
	MaxCustomSize = 25
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Params returns the board of a preset. It reports false for [Custom].
func (d Difficulty) Params() (GameParams, bool) {
	switch d {
	case Easy:
		return GameParams{Width: 6, Height: 6, MineCount: 6}, true
	case Medium:
		return GameParams{Width: 12, Height: 12, MineCount: 24}, true
	case Hard:
		return GameParams{Width: 25, Height: 25, MineCount: 104}, true
	default:
		return GameParams{}, false
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// CustomParams builds a square n x n board carrying n*n/6 mines.
func CustomParams(n int) (GameParams, error) {
	p := GameParams{Width: n, Height: n, MineCount: n * n / 6}
	if n < MinCustomSize || n > MaxCustomSize {
		return p, &ConfigError{
			Width: n, Height: n, MineCount: p.MineCount,
			Reason: fmt.Sprintf(
				"custom size must be between %d and %d",
				MinCustomSize, MaxCustomSize,
			),
		}
	}
	return p, nil
}
