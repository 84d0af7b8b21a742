package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrGameOver        = fmt.Errorf("game is over")
	ErrInvalidPosition = fmt.Errorf("invalid cell position")
	ErrUnknownMove     = fmt.Errorf("unknown move")
)

type Move int

const (
	Open Move = iota
	Flag
	Chord
)

func (m Move) String() string {
	switch m {
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Chord:
		return "chord"
	default:
		return "unknown"
	}
}

func ParseMove(s string) (Move, error) {
	switch s {
	case "open", "o":
		return Open, nil
	case "flag", "f":
		return Flag, nil
	case "chord", "c":
		return Chord, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMove, s)
}

// Session owns one board and serialises every access to it.
type Session struct {
	mu sync.Mutex

	ID        int64
	PlayerID  *int64
	StartedAt time.Time

	board     *mines.Board
	moves     int
	forfeited bool
	endedAt   time.Time
	touchedAt time.Time
	recorded  bool
	now       func() time.Time
}

// View is a consistent copy of a session taken under its lock.
type View struct {
	ID            int64
	PlayerID      *int64
	Params        mines.GameParams
	Grid          mines.Grid
	RemainingSafe int
	Flags         int
	State         mines.GameState
	Moves         int
	StartedAt     time.Time
	EndedAt       *time.Time
}

func (s *Session) state() mines.GameState {
	if s.forfeited {
		return mines.Lost
	}
	return s.board.State()
}

func (s *Session) finishIfOver() {
	if s.endedAt.IsZero() && s.state() != mines.InProgress {
		s.endedAt = s.now()
	}
}

// Apply performs a move. Moves that change nothing still succeed but are
// not counted.
func (s *Session) Apply(move Move, x, y int) (mines.RevealOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchedAt = s.now()
	if s.state() != mines.InProgress {
		return mines.NoOp, ErrGameOver
	}
	if !s.board.IsValid(x, y) {
		return mines.NoOp, ErrInvalidPosition
	}

	var outcome mines.RevealOutcome
	switch move {
	case Open:
		outcome = s.board.RevealCell(x, y)
	case Chord:
		outcome = s.board.ChordCell(x, y)
	case Flag:
		before := s.board.Cell(x, y)
		s.board.ToggleFlag(x, y)
		if s.board.Cell(x, y) != before {
			s.moves++
		}
		return mines.NoOp, nil
	default:
		return mines.NoOp, ErrUnknownMove
	}

	if outcome != mines.NoOp {
		s.moves++
	}
	s.finishIfOver()
	return outcome, nil
}

func (s *Session) Forfeit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchedAt = s.now()
	if s.state() != mines.InProgress {
		return ErrGameOver
	}
	s.forfeited = true
	s.finishIfOver()
	return nil
}

// MarkRecorded reports true exactly once, for the first caller after the
// game has ended.
func (s *Session) MarkRecorded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.endedAt.IsZero() || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state()
	v := View{
		ID:            s.ID,
		PlayerID:      s.PlayerID,
		Params:        s.board.Params(),
		Grid:          s.board.Grid(state == mines.Lost),
		RemainingSafe: s.board.RemainingSafe(),
		Flags:         s.board.Flags(),
		State:         state,
		Moves:         s.moves,
		StartedAt:     s.StartedAt,
	}
	if !s.endedAt.IsZero() {
		endedAt := s.endedAt
		v.EndedAt = &endedAt
	}
	return v
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
