package handlers

import (
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

type Records struct {
	log     *logrus.Logger
	records RecordStore
}

func NewRecords(log *logrus.Logger, records RecordStore) *Records {
	return &Records{log: log, records: records}
}

type RecordsQueryDTO struct {
	NewGameDTO
	Limit int `schema:"limit"`
}

func ParseRecordsQuery(src url.Values) (RecordsQueryDTO, error) {
	var dto RecordsQueryDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Filter narrows the records to one board only when the query names one.
func (dto RecordsQueryDTO) Filter() (repository.HighscoreFilter, error) {
	filter := repository.HighscoreFilter{Limit: dto.Limit}
	if dto.NewGameDTO == (NewGameDTO{}) {
		return filter, nil
	}
	params, err := dto.Params()
	if err != nil {
		return filter, err
	}
	filter.GameParams = &params
	return filter, nil
}

func (h Records) serve(w http.ResponseWriter, r *http.Request, username *string) {
	dto, err := ParseRecordsQuery(r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	filter, err := dto.Filter()
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	filter.Username = username

	highscores, err := h.records.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch highscores")
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}

	sendJSONOrLog(w, h.log, highscores)
}

func (h Records) GetRecords(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, nil)
}

func (h Records) GetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	h.serve(w, r, &claims.Username)
}

