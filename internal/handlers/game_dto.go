package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

// MaxBoardSide bounds explicit board dimensions accepted over HTTP.
const MaxBoardSide = mines.MaxCustomSize

// NewGameDTO selects a board either by difficulty name, by custom size or
// by explicit dimensions, in that order.
type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Size       int    `schema:"size"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Params() (mines.GameParams, error) {
	if dto.Difficulty != "" {
		d, err := mines.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return mines.GameParams{}, err
		}
		if params, ok := d.Params(); ok {
			return params, nil
		}
		return mines.CustomParams(dto.Size)
	}
	if dto.Size != 0 {
		return mines.CustomParams(dto.Size)
	}
	params := mines.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	if params.Width > MaxBoardSide || params.Height > MaxBoardSide {
		return params, &mines.ConfigError{
			Width:     params.Width,
			Height:    params.Height,
			MineCount: params.MineCount,
			Reason:    fmt.Sprintf("width and height must not exceed %d", MaxBoardSide),
		}
	}
	return params, params.Validate()
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src url.Values) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	SessionId  string          `json:"session_id"`
	Grid       mines.Grid      `json:"grid"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	MineCount  int             `json:"mine_count"`
	Difficulty string          `json:"difficulty"`
	Remaining  int             `json:"remaining"`
	Flags      int             `json:"flags"`
	State      mines.GameState `json:"state"`
	Moves      int             `json:"moves"`
	StartedAt  int64           `json:"started_at"`
	EndedAt    *int64          `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(v session.View) *GameSessionDTO {
	var endedAt *int64
	if v.EndedAt != nil {
		e := v.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		SessionId:  strconv.FormatInt(v.ID, 10),
		Grid:       v.Grid,
		Width:      v.Params.Width,
		Height:     v.Params.Height,
		MineCount:  v.Params.MineCount,
		Difficulty: v.Params.Difficulty().String(),
		Remaining:  v.RemainingSafe,
		Flags:      v.Flags,
		State:      v.State,
		Moves:      v.Moves,
		StartedAt:  v.StartedAt.UnixMilli(),
		EndedAt:    endedAt,
	}
}

type MoveResultDTO struct {
	Outcome string          `json:"outcome,omitempty"`
	Session *GameSessionDTO `json:"session"`
}

// outcomeText names what a move revealed. Flag moves reveal nothing and
// report no outcome.
func outcomeText(move session.Move, outcome mines.RevealOutcome) string {
	if move == session.Flag {
		return ""
	}
	return outcome.String()
}

func playtime(v session.View) time.Duration {
	if v.EndedAt == nil {
		return 0
	}
	return v.EndedAt.Sub(v.StartedAt)
}
