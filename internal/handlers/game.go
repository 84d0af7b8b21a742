package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

var ErrSessionNotFound = errors.New("game session not found")

type GameHandler struct {
	log      *logrus.Logger
	sessions *session.Manager
	records  RecordStore
	ws       *config.WebSocket
}

// NewGameHandler serves games kept in sessions. Finished games are stored
// in records unless it is nil.
func NewGameHandler(
	log *logrus.Logger,
	sessions *session.Manager,
	records RecordStore,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		records:  records,
		ws:       ws,
	}
}

func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return nil, false
	}
	s, ok := g.sessions.Get(sessionId)
	if !ok {
		sendError(w, g.log, http.StatusNotFound, ErrSessionNotFound)
		return nil, false
	}
	return s, true
}

// record stores a finished game once, no matter how many requests observe
// its end.
func (g GameHandler) record(ctx context.Context, s *session.Session) {
	if g.records == nil || !s.MarkRecorded() {
		return
	}
	v := s.View()
	_, err := g.records.CreateRecord(ctx, repository.CreateRecordParams{
		PlayerId:  v.PlayerID,
		Params:    v.Params,
		Won:       v.State == mines.Won,
		Moves:     v.Moves,
		StartedAt: v.StartedAt,
		EndedAt:   *v.EndedAt,
	})
	if err != nil {
		g.log.WithError(err).WithField("session_id", v.ID).Error("unable to store game record")
		return
	}
	g.log.WithFields(logrus.Fields{
		"session_id": v.ID,
		"state":      v.State.String(),
		"playtime":   playtime(v).String(),
	}).Info("game recorded")
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	dto, err := ParseNewGameDTO(r.Form)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	params, err := dto.Params()
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var playerId *int64
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		playerId = &claims.PlayerId
	}

	s, err := g.sessions.Create(params, playerId)
	if errors.Is(err, mines.ErrInvalidParams) {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create game session")
		return
	}

	sendStatusJSON(w, g.log, http.StatusCreated, NewGameSessionDTO(s.View()))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s.View()))
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidPosition),
		errors.Is(err, session.ErrUnknownMove):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Move returns the handler applying move at the x and y query parameters.
func (g GameHandler) Move(move session.Move) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := g.lookup(w, r)
		if !ok {
			return
		}

		pos, err := ParsePosition(r.URL.Query())
		if err != nil {
			sendError(w, g.log, http.StatusBadRequest, err)
			return
		}

		outcome, err := s.Apply(move, pos.X, pos.Y)
		if err != nil {
			sendError(w, g.log, moveStatus(err), err)
			return
		}
		g.record(r.Context(), s)

		sendJSONOrLog(w, g.log, MoveResultDTO{
			Outcome: outcomeText(move, outcome),
			Session: NewGameSessionDTO(s.View()),
		})
	}
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	if err := s.Forfeit(); err != nil {
		sendError(w, g.log, moveStatus(err), err)
		return
	}
	g.record(r.Context(), s)

	sendJSONOrLog(w, g.log, NewGameSessionDTO(s.View()))
}
