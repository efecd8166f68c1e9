package httpapp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/middleware"
	httprouters "portfolio/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/crypto/bcrypt"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Options struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
	AllowOrigins    []string
	SessionSecret   string
	CookieSecure    bool

	// MetricsUser and MetricsPasswordHash guard /metrics with basic auth
	// when the hash is set.
	MetricsUser         string
	MetricsPasswordHash string
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	opts    Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	e.Use(session.Middleware(newCookieStore(log, opts)))

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogMethod:   true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(middleware.PrometheusMetrics)

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		opts:    opts,
	}
}

func newCookieStore(log *slog.Logger, opts Options) *sessions.CookieStore {
	secret := []byte(opts.SessionSecret)
	if len(secret) == 0 {
		log.Warn("session secret not set, sessions will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("cannot generate session secret: " + err.Error())
		}
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	optCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

func (s *Server) metricsAuth() echo.MiddlewareFunc {
	hash := []byte(s.opts.MetricsPasswordHash)

	return echomw.BasicAuth(func(user, password string, c echo.Context) (bool, error) {
		if subtle.ConstantTimeCompare([]byte(user), []byte(s.opts.MetricsUser)) != 1 {
			return false, nil
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
			s.log.Warn("metrics auth failed", sl.Err(err))
			return false, nil
		}
		return true, nil
	})
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/rss.xml", s.routers.RSS)
	s.e.GET("/sitemap.xml", s.routers.Sitemap)

	metrics := echo.WrapHandler(promhttp.Handler())
	if s.opts.MetricsPasswordHash != "" {
		s.e.GET("/metrics", metrics, s.metricsAuth())
	} else {
		s.e.GET("/metrics", metrics)
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/posts", s.routers.ListPosts)
		api.GET("/posts/:slug", s.routers.GetPost)

		api.GET("/tags", s.routers.ListTags)
		api.GET("/tags/:id/posts", s.routers.ListPostsByTag)

		api.GET("/projects", s.routers.ListProjects)
		// static route wins: "featured" is not a usable project slug
		api.GET("/projects/featured", s.routers.ListFeaturedProjects)
		api.GET("/projects/:slug", s.routers.GetProject)

		api.GET("/profile", s.routers.GetProfile)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", s.routers.Login)
			authGroup.POST("/logout", s.routers.Logout)
			authGroup.GET("/session", s.routers.Session)
		}
	}
}
