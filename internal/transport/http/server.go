package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/services/auth"
	"portfolio/internal/storage"
	"portfolio/internal/transport/http/dto"
	"portfolio/internal/transport/http/dto/request"
	"portfolio/internal/transport/http/dto/response"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "portfolio/docs"
)

// RetryAfterSeconds is sent with every 503 caused by the content source.
const RetryAfterSeconds = 30

const sessionIDKey = "session_id"

type ContentService interface {
	ListPublishedPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error)
	ListFeaturedProjects(ctx context.Context) ([]models.Project, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListPostsByTag(ctx context.Context, tagID string) (*models.Tag, []models.BlogPost, error)
}

type ProfileService interface {
	Profile() models.Profile
}

type AuthService interface {
	Login(ctx context.Context, clientIP, email, password string) (string, *models.AuthSession, error)
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (*models.AuthSession, *models.UserProfile, error)
}

// Site describes the public site the feeds link to.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

type Routers struct {
	log            *slog.Logger
	ContentService ContentService
	ProfileService ProfileService
	AuthService    AuthService
	site           Site
	sessionName    string
}

func NewRouter(log *slog.Logger, contentService ContentService, profileService ProfileService, authService AuthService, site Site, sessionName string) *Routers {
	return &Routers{
		log:            log,
		ContentService: contentService,
		ProfileService: profileService,
		AuthService:    authService,
		site:           site,
		sessionName:    sessionName,
	}
}

// contentError writes the response for a failed content read.
func (r *Routers) contentError(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrUnavailable):
		log.Warn("content source unavailable", sl.Err(err))
		c.Response().Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
		return c.JSON(http.StatusServiceUnavailable, response.ErrContentUnavailable)
	}

	log.Error("unexpected content error", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// ListPosts godoc
// @Summary List published posts
// @Description Published blog posts, newest first.
// @Tags blog
// @Produce json
// @Success 200 {object} response.Response{data=[]models.BlogPost}
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/posts [get]
func (r *Routers) ListPosts(c echo.Context) error {
	const op = "http.routers.ListPosts"

	log := r.log.With(slog.String("op", op))

	posts, err := r.ContentService.ListPublishedPosts(c.Request().Context())
	if err != nil {
		return r.contentError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// GetPost godoc
// @Summary Get a post by slug
// @Description Unpublished posts answer exactly like unknown slugs.
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Response{data=models.BlogPost}
// @Failure 404 {object} response.ErrorResponse "Post not found"
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/posts/{slug} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	post, err := r.ContentService.GetPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.contentError(c, log, err)
	}

	if !post.IsPublished {
		log.Debug("unpublished post requested")
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// ListTags godoc
// @Summary List tags
// @Tags blog
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Tag}
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/tags [get]
func (r *Routers) ListTags(c echo.Context) error {
	const op = "http.routers.ListTags"

	log := r.log.With(slog.String("op", op))

	tags, err := r.ContentService.ListTags(c.Request().Context())
	if err != nil {
		return r.contentError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tags))
}

// ListPostsByTag godoc
// @Summary List published posts with a tag
// @Tags blog
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Response{data=dto.TagPostsResponse}
// @Failure 404 {object} response.ErrorResponse "Tag not found"
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/tags/{id}/posts [get]
func (r *Routers) ListPostsByTag(c echo.Context) error {
	const op = "http.routers.ListPostsByTag"

	log := r.log.With(
		slog.String("op", op),
		slog.String("tag_id", c.Param("id")),
	)

	tag, posts, err := r.ContentService.ListPostsByTag(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.contentError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.TagPostsResponse{
		Tag:   *tag,
		Posts: posts,
	}))
}

// ListProjects godoc
// @Summary List projects
// @Description Projects by ascending sort order, newest first within a sort order.
// @Tags projects
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Project}
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/projects [get]
func (r *Routers) ListProjects(c echo.Context) error {
	const op = "http.routers.ListProjects"

	log := r.log.With(slog.String("op", op))

	projects, err := r.ContentService.ListProjects(c.Request().Context())
	if err != nil {
		return r.contentError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(projects))
}

// ListFeaturedProjects godoc
// @Summary List featured projects
// @Tags projects
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Project}
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/projects/featured [get]
func (r *Routers) ListFeaturedProjects(c echo.Context) error {
	const op = "http.routers.ListFeaturedProjects"

	log := r.log.With(slog.String("op", op))

	projects, err := r.ContentService.ListFeaturedProjects(c.Request().Context())
	if err != nil {
		return r.contentError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(projects))
}

// GetProject godoc
// @Summary Get a project by slug
// @Description The slug "featured" is reserved for the featured listing.
// @Tags projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} response.Response{data=models.Project}
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /api/v1/projects/{slug} [get]
func (r *Routers) GetProject(c echo.Context) error {
	const op = "http.routers.GetProject"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	project, err := r.ContentService.GetProjectBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.contentError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(project))
}

// GetProfile godoc
// @Summary Landing page profile
// @Tags profile
// @Produce json
// @Success 200 {object} response.Response{data=models.Profile}
// @Router /api/v1/profile [get]
func (r *Routers) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.ProfileService.Profile()))
}

// Login godoc
// @Summary Sign in
// @Description Signs in with the data service and starts a cookie session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=dto.LoginResponse}
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 401 {object} response.ErrorResponse "Authentication failed"
// @Failure 429 {object} response.ErrorResponse "Too many attempts"
// @Failure 503 {object} response.ErrorResponse "Sign-in not available"
// @Router /api/v1/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	sessionID, authSess, err := r.AuthService.Login(c.Request().Context(), c.RealIP(), req.Email, req.Password)
	if err != nil {
		return r.authError(c, log, err)
	}

	sess, err := session.Get(r.sessionName, c)
	if err != nil {
		log.Error("failed to open cookie session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	sess.Values[sessionIDKey] = sessionID
	if ttl := time.Until(authSess.ExpiresAt); ttl > 0 {
		sess.Options.MaxAge = int(ttl.Seconds())
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save cookie session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.LoginResponse{
		UserID:    authSess.UserID,
		Email:     authSess.Email,
		ExpiresAt: authSess.ExpiresAt,
	}))
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse "Sign-in not available"
// @Router /api/v1/auth/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(slog.String("op", op))

	sess, err := session.Get(r.sessionName, c)
	if err != nil {
		log.Error("failed to open cookie session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if sessionID, _ := sess.Values[sessionIDKey].(string); sessionID != "" {
		if err := r.AuthService.Logout(c.Request().Context(), sessionID); err != nil {
			return r.authError(c, log, err)
		}
	}

	delete(sess.Values, sessionIDKey)
	sess.Options.MaxAge = -1

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to clear cookie session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "signed out",
	})
}

// Session godoc
// @Summary Current session
// @Description The signed-in user and their profile row.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=dto.SessionResponse}
// @Failure 401 {object} response.ErrorResponse "No active session"
// @Failure 503 {object} response.ErrorResponse "Sign-in not available"
// @Router /api/v1/auth/session [get]
func (r *Routers) Session(c echo.Context) error {
	const op = "http.routers.Session"

	log := r.log.With(slog.String("op", op))

	sess, err := session.Get(r.sessionName, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
	}

	sessionID, _ := sess.Values[sessionIDKey].(string)
	if sessionID == "" {
		return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
	}

	authSess, profile, err := r.AuthService.Session(c.Request().Context(), sessionID)
	if err != nil {
		return r.authError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.SessionResponse{
		UserID:    authSess.UserID,
		Email:     authSess.Email,
		ExpiresAt: authSess.ExpiresAt,
		Profile:   profile,
	}))
}

func (r *Routers) authError(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	case errors.Is(err, auth.ErrTooManyAttempts):
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(auth.AttemptWindow.Seconds())))
		return c.JSON(http.StatusTooManyRequests, response.ErrTooManyAttempts)
	case errors.Is(err, auth.ErrSessionNotFound):
		return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
	case errors.Is(err, auth.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, response.ErrAuthUnavailable)
	}

	log.Error("auth request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}
