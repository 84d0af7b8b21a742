package handlers

import (
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/session"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
}

type CommandKind int

const (
	CommandFetch CommandKind = iota
	CommandMove
	CommandForfeit
)

// Command is one line of the websocket protocol: "g" fetches the session,
// "o x y", "f x y" and "c x y" open, flag and chord a cell, "r" forfeits.
type Command struct {
	Kind CommandKind
	Move session.Move
	X, Y int
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandNargs   = errors.New("invalid number of arguments")
)

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func ParseCommand(c string) (Command, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return Command{}, ErrCommandNargs
	}

	switch parts[0] {
	case "g":
		return Command{Kind: CommandFetch}, nil
	case "r":
		return Command{Kind: CommandForfeit}, nil
	}

	move, err := session.ParseMove(parts[0])
	if err != nil {
		return Command{}, err
	}
	x, y, err := parseXY(parts[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandMove, Move: move, X: x, Y: y}, nil
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
