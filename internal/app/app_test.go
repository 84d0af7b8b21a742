package app

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/session"
)

func newTestApp(t *testing.T, basePath string) *App {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ws, err := config.NewWebSocket(true)
	require.NoError(t, err)

	a := New(log, &config.App{BasePath: basePath, SessionTTL: time.Hour})
	a.cookies = config.NewCookiesWith(
		config.NewJWTFromKeys(key, time.Hour), "localhost", false, http.SameSiteLaxMode,
	)
	a.ws = ws
	a.sessions = session.NewManager(log, createRand())
	a.loadRoutes()
	return a
}

func TestRoutes(t *testing.T) {
	h := newTestApp(t, "").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game?difficulty=medium", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/game/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game/1/flag?x=0&y=0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/game/1/open?x=0&y=0", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logged_in":false}`, rec.Body.String())
}

func TestRoutesUnderBasePath(t *testing.T) {
	h := newTestApp(t, "/api").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/game?size=8", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game?size=8", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetupChecksSettingsBeforeConnecting(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://mines@127.0.0.1:1/unreachable")
	t.Setenv("JWT_PRIVATE_KEY", "")
	os.Unsetenv("JWT_PRIVATE_KEY")
	t.Setenv("JWT_PRIVATE_KEY_FILE", "")
	os.Unsetenv("JWT_PRIVATE_KEY_FILE")

	log := logrus.New()
	log.SetOutput(io.Discard)
	a := New(log, &config.App{SessionTTL: time.Hour})

	err := a.setup(context.Background(), createRand())
	assert.ErrorContains(t, err, "JWT_PRIVATE_KEY")
	assert.Nil(t, a.db)
	assert.Nil(t, a.sessions)
}

func TestHandlerWithoutCookiesIsAnonymous(t *testing.T) {
	a := newTestApp(t, "")
	a.cookies = nil
	h := a.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game?difficulty=easy", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
