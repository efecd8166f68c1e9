package suite

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"portfolio/internal/app"
	"portfolio/internal/config"
)

type Suite struct {
	*testing.T
	Cfg    *config.Config
	App    *app.App
	Server *httptest.Server
}

// New boots the whole application from the local config with every
// external backend switched off.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()
	t.Parallel()

	cfg := config.MustLoadPath(configPath())
	cfg.DataService.URL = ""
	cfg.DataService.APIKey = ""
	cfg.Storage.DSN = ""
	cfg.Redis.RedisAddr = ""
	cfg.Profile.Path = "../config/profile.yaml"

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Minute)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	application := app.New(ctx, log, cfg)
	server := httptest.NewServer(application.HTTPServer.Handler())

	t.Cleanup(func() {
		t.Helper()
		server.Close()
		cancelCtx()
	})

	return ctx, &Suite{
		T:      t,
		Cfg:    cfg,
		App:    application,
		Server: server,
	}
}

func configPath() string {
	const key = "CONFIG_PATH"

	if v := os.Getenv(key); v != "" {
		return v
	}

	return "../config/local.yaml"
}
