package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppDefaults(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	os.Unsetenv("APP_ADDR")
	os.Unsetenv("APP_PORT")
	os.Unsetenv("SESSION_TTL")

	app, err := NewApp()
	require.NoError(t, err)
	assert.Equal(t, ":8080", app.Addr)
	assert.Equal(t, time.Hour, app.SessionTTL)
	assert.False(t, app.Development)
}

func TestNewAppFromEnv(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	os.Unsetenv("APP_ADDR")

	app, err := NewApp()
	require.NoError(t, err)
	assert.Equal(t, ":9000", app.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, app.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, app.SessionTTL)
	assert.True(t, app.Development)

	t.Setenv("SESSION_TTL", "soon")
	_, err = NewApp()
	assert.Error(t, err)
}

func TestDatabaseFromEnv(t *testing.T) {
	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("p@ss word\n"), 0o600))

	os.Unsetenv("POSTGRES_PASSWORD")
	t.Setenv("POSTGRES_PASSWORD_FILE", passwordFile)
	t.Setenv("POSTGRES_USER", "mines")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_DB", "minesweeper")
	t.Setenv("POSTGRES_SSLMODE", "require")

	cfg, err := NewDatabase()
	require.NoError(t, err)
	assert.Equal(t, "p@ss word", cfg.Password)
	assert.Equal(t,
		"postgres://mines:p%40ss+word@db:5432/minesweeper?sslmode=require",
		cfg.URL(),
	)

	os.Unsetenv("DATABASE_URL")
	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, cfg.URL(), url)

	t.Setenv("DATABASE_URL", "postgres://override")
	url, err = DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://override", url)
}

func TestDatabaseMissingEnv(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("POSTGRES_USER")

	_, err := DbURL()
	assert.ErrorContains(t, err, "POSTGRES_USER")
}

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewJWTFromKeys(key, time.Hour)
}

func TestJWTRoundTrip(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.Sign(NewPlayerClaims(42, "ada"))
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.PlayerId)
	assert.Equal(t, "ada", claims.Username)

	_, err = newTestJWT(t).Parse(token)
	assert.Error(t, err, "token signed by another key")
}

// unsetenv clears names for the duration of the test.
func unsetenv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writePEM(t *testing.T, dir, name, kind string, der []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := pem.EncodeToMemory(&pem.Block{Type: kind, Bytes: der})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func setJWTKeys(t *testing.T, private *rsa.PrivateKey, public *rsa.PublicKey) {
	t.Helper()
	dir := t.TempDir()
	publicDER, err := x509.MarshalPKIXPublicKey(public)
	require.NoError(t, err)

	unsetenv(t, "JWT_PRIVATE_KEY", "JWT_PUBLIC_KEY")
	t.Setenv("JWT_PRIVATE_KEY_FILE", writePEM(t, dir, "private.pem",
		"RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(private)))
	t.Setenv("JWT_PUBLIC_KEY_FILE", writePEM(t, dir, "public.pem",
		"PUBLIC KEY", publicDER))
}

func TestNewJWTFromEnv(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	setJWTKeys(t, key, &key.PublicKey)
	t.Setenv("JWT_TOKEN_LIFETIME", "2h")

	j, err := NewJWT()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, j.TokenLifetime)

	token, err := j.Sign(NewPlayerClaims(1, "ada"))
	require.NoError(t, err)
	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Username)

	t.Setenv("JWT_TOKEN_LIFETIME", "forever")
	_, err = NewJWT()
	assert.Error(t, err)
}

func TestNewJWTRejectsMismatchedKeys(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	setJWTKeys(t, key, &other.PublicKey)
	unsetenv(t, "JWT_TOKEN_LIFETIME")

	_, err = NewJWT()
	assert.ErrorIs(t, err, ErrKeyMismatch)
}

func TestNewJWTMissingKeys(t *testing.T) {
	unsetenv(t, "JWT_PRIVATE_KEY", "JWT_PRIVATE_KEY_FILE")

	_, err := NewJWT()
	assert.ErrorContains(t, err, "JWT_PRIVATE_KEY")
}

func TestCookiesRoundTrip(t *testing.T) {
	cookies := NewCookiesWith(newTestJWT(t), "localhost", false, http.SameSiteLaxMode)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, NewPlayerClaims(7, "grace")))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}

	claims, err := cookies.ParsePlayerClaims(r)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.PlayerId)

	rec = httptest.NewRecorder()
	cookies.Clear(rec)
	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge)
	}
}

func TestCookiesMissing(t *testing.T) {
	cookies := NewCookiesWith(newTestJWT(t), "localhost", false, http.SameSiteLaxMode)
	_, err := cookies.ParsePlayerClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, http.ErrNoCookie)
}

func TestWebSocketOrigins(t *testing.T) {
	t.Setenv("WS_ALLOWED_ORIGINS", "mines.example.com, play.example.com")
	ws, err := NewWebSocket(false)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://play.example.com")
	assert.True(t, ws.Upgrader.CheckOrigin(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, ws.Upgrader.CheckOrigin(r))

	dev, err := NewWebSocket(true)
	require.NoError(t, err)
	assert.True(t, dev.Upgrader.CheckOrigin(r))
}
