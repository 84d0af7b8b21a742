package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type App struct {
	Addr           string
	BasePath       string
	Development    bool
	LogFile        string
	SessionTTL     time.Duration
	AllowedOrigins []string
}

const (
	defaultAddr       = ":8080"
	defaultSessionTTL = time.Hour
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func NewApp() (*App, error) {
	app := &App{
		Addr:        defaultAddr,
		BasePath:    os.Getenv("APP_BASE_PATH"),
		Development: Development(),
		LogFile:     os.Getenv("LOG_FILE"),
		SessionTTL:  defaultSessionTTL,
	}

	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		app.Addr = addr
	} else if port, ok := os.LookupEnv("APP_PORT"); ok {
		app.Addr = ":" + port
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			app.AllowedOrigins = append(app.AllowedOrigins, origin)
		}
	}

	if ttl, ok := os.LookupEnv("SESSION_TTL"); ok {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", d)
		}
		app.SessionTTL = d
	}

	return app, nil
}

// loadSecret reads name from the environment, falling back to the file
// named by name_FILE.
func loadSecret(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if ok {
		return value, nil
	}

	path, ok := os.LookupEnv(name + "_FILE")
	if !ok {
		return "", fmt.Errorf("no %s or %s_FILE env variable set", name, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", path, err)
	}

	return string(data), nil
}
