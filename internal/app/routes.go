package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// route mounts h under the configured base path.
func (a *App) route(pattern string, h http.HandlerFunc) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		a.router.HandleFunc(a.config.BasePath+pattern, h)
		return
	}
	a.router.HandleFunc(method+" "+a.config.BasePath+path, h)
}

func (a *App) loadRoutes() {
	repo := repository.New(a.db)

	game := handlers.NewGameHandler(a.log, a.sessions, repo, a.ws)
	a.route("POST /v1/game", game.NewGame)
	a.route("GET /v1/game/{id}", game.Fetch)
	a.route("POST /v1/game/{id}/open", game.Move(session.Open))
	a.route("POST /v1/game/{id}/flag", game.Move(session.Flag))
	a.route("POST /v1/game/{id}/chord", game.Move(session.Chord))
	a.route("POST /v1/game/{id}/forfeit", game.Forfeit)
	a.route("GET /v1/game/{id}/connect", game.ConnectWS)

	auth := handlers.NewAuth(a.log, repo, a.cookies)
	a.route("POST /v1/register", auth.Register)
	a.route("POST /v1/login", auth.Login)
	a.route("POST /v1/logout", auth.Logout)
	a.route("GET /v1/status", auth.Status)

	records := handlers.NewRecords(a.log, repo)
	a.route("GET /v1/records", records.GetRecords)
	a.route("GET /v1/myrecords", records.GetOwnRecords)
}
