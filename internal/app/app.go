package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

const (
	pruneInterval   = time.Minute
	shutdownTimeout = 30 * time.Second
)

type App struct {
	log      *logrus.Logger
	config   *config.App
	router   *http.ServeMux
	db       *pgxpool.Pool
	cookies  *config.Cookies
	ws       *config.WebSocket
	sessions *session.Manager
}

func New(log *logrus.Logger, cfg *config.App) *App {
	return &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
	}
}

func (a *App) auth() middleware.Middleware {
	if a.cookies == nil {
		return nil
	}
	return middleware.Auth(a.log, a.cookies)
}

// Handler builds the middleware chain around the routes. Without cookie
// settings every request is anonymous.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		a.auth(),
		middleware.Cors(a.config.AllowedOrigins...),
		middleware.Logging(a.log),
	)
}

// setup reads every setting before connecting, so a bad setting never
// leaves a pool behind.
func (a *App) setup(ctx context.Context, src mines.Source) error {
	url, err := config.DbURL()
	if err != nil {
		return err
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	ws, err := config.NewWebSocket(a.config.Development)
	if err != nil {
		return err
	}

	db, err := database.ConnectAndMigrate(ctx, url)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}

	a.db = db
	a.cookies = cookies
	a.ws = ws
	a.sessions = session.NewManager(a.log, src)
	a.loadRoutes()
	return nil
}

// Start serves until ctx is done. src seeds every board; nil picks a
// random seed.
func (a *App) Start(ctx context.Context, src mines.Source) error {
	if src == nil {
		src = createRand()
	}
	if err := a.setup(ctx, src); err != nil {
		return err
	}
	defer a.db.Close()

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.WithField("addr", a.config.Addr).Info("server listening")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.sessions.Run(gCtx, pruneInterval, a.config.SessionTTL)
	})

	return g.Wait()
}
