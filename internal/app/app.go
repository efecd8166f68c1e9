package app

import (
	"context"
	"log/slog"

	httpapp "portfolio/internal/app/http"
	"portfolio/internal/config"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/repository"
	authsvc "portfolio/internal/services/auth"
	contentsvc "portfolio/internal/services/content_service"
	profilesvc "portfolio/internal/services/profile_service"
	redisapp "portfolio/internal/storage/redis"
	"portfolio/internal/storage/supabase"
	httprouters "portfolio/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log   *slog.Logger
	repo  *repository.Repository
	redis *redisapp.Client
}

// New wires the application. Content comes from the REST API when it is
// configured, from Postgres when only a DSN is set, and from an inert
// client otherwise.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) *App {
	dataCfg := supabase.Config{
		URL:     cfg.DataService.URL,
		APIKey:  cfg.DataService.APIKey,
		Timeout: cfg.DataService.Timeout,
	}
	client := supabase.New(dataCfg)

	repo := newContentRepository(ctx, log, cfg, client)

	var sessions authsvc.SessionStore
	var redisClient *redisapp.Client
	if cfg.Redis.RedisAddr != "" {
		redisClient = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := redisClient.HealthCheck(ctx); err != nil {
			log.Warn("redis is not reachable yet", sl.Err(err))
		}
		sessions = repository.NewRedisSessionRepo(redisClient)
	} else {
		log.Warn("redis not configured, sign-in is disabled")
	}

	profileService, err := profilesvc.New(log, cfg.Profile.Path)
	if err != nil {
		panic(err)
	}

	contentService := contentsvc.NewContentService(log, repo.Content)
	authService := authsvc.New(log, client, sessions, repository.NewRestUserProfileRepo(dataCfg))

	routers := httprouters.NewRouter(log, contentService, profileService, authService,
		httprouters.Site{
			Name:        cfg.Site.Name,
			URL:         cfg.Site.URL,
			Description: cfg.Site.Description,
			Author:      cfg.Site.Author,
		},
		cfg.Session.CookieName,
	)

	server := httpapp.New(log, httpapp.Options{
		Host:                cfg.HTTP.Host,
		Port:                cfg.HTTP.Port,
		ShutdownTimeout:     cfg.HTTP.ShutdownTimeout,
		AllowOrigins:        cfg.HTTP.AllowOrigins,
		SessionSecret:       cfg.Session.Secret,
		CookieSecure:        cfg.Session.CookieSecure,
		MetricsUser:         cfg.Metrics.Username,
		MetricsPasswordHash: cfg.Metrics.PasswordHash,
	}, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		log:        log,
		repo:       repo,
		redis:      redisClient,
	}
}

func newContentRepository(ctx context.Context, log *slog.Logger, cfg *config.Config, client *supabase.Client) *repository.Repository {
	if client.Configured() {
		log.Info("serving content from the data service", slog.String("url", cfg.DataService.URL))
		return repository.NewRestRepository(client)
	}

	if cfg.Storage.DSN != "" {
		repo, err := repository.NewRepository(ctx, cfg.Storage.DSN)
		if err != nil {
			panic(err)
		}
		log.Info("serving content from postgres")
		return repo
	}

	log.Warn("no content source configured, serving empty content")
	return repository.NewRestRepository(client)
}

// Stop shuts the HTTP server down and releases storage.
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	a.repo.Close()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", sl.Err(err))
		}
	}
}
