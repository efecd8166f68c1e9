package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/jwt"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/storage"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnavailable        = errors.New("auth is not available")
)

const (
	MaxFailedAttempts = 5
	AttemptWindow     = 15 * time.Minute

	defaultSessionTTL = time.Hour
)

type Auth struct {
	log      *slog.Logger
	signer   Authenticator
	sessions SessionStore
	profiles ProfileProvider
	attempts *cache.Cache
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --all
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

type SessionStore interface {
	SaveSession(ctx context.Context, sessionID string, sess models.AuthSession, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*models.AuthSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type ProfileProvider interface {
	UserProfile(ctx context.Context, accessToken, userID string) (*models.UserProfile, error)
}

// New builds the auth service. A nil sessions store disables sign-in:
// every call answers ErrUnavailable.
func New(log *slog.Logger, signer Authenticator, sessions SessionStore, profiles ProfileProvider) *Auth {
	return &Auth{
		log:      log,
		signer:   signer,
		sessions: sessions,
		profiles: profiles,
		attempts: cache.New(AttemptWindow, 2*AttemptWindow),
	}
}

// Login returns the new session id.
func (a *Auth) Login(ctx context.Context, clientIP, email, password string) (string, *models.AuthSession, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
		slog.String("ip", clientIP),
	)

	if a.sessions == nil {
		log.Warn("session store is not configured")
		return "", nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	if a.failedAttempts(clientIP) >= MaxFailedAttempts {
		log.Warn("login rate limited")
		return "", nil, fmt.Errorf("%s: %w", op, ErrTooManyAttempts)
	}

	log.Info("attempting to login user")

	sess, err := a.signer.SignInWithPassword(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidCredentials):
			a.recordFailure(clientIP)
			log.Info("invalid credentials", sl.Err(err))
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		case errors.Is(err, storage.ErrNotConfigured):
			log.Warn("data service is not configured")
			return "", nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}

		log.Error("failed to sign in", sl.Err(err))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	meta, err := jwt.ParseClaims(sess.AccessToken)
	if err != nil {
		log.Error("failed to read access token", sl.Err(err))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if sess.UserID == "" {
		sess.UserID = meta.UserID
	}
	if sess.Email == "" {
		sess.Email = meta.Email
	}
	if meta.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(meta.ExpiresAt, 0)
	}

	ttl := time.Until(sess.ExpiresAt)
	if sess.ExpiresAt.IsZero() || ttl <= 0 {
		ttl = defaultSessionTTL
	}

	sessionID := uuid.NewString()
	if err := a.sessions.SaveSession(ctx, sessionID, *sess, ttl); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	a.attempts.Delete(clientIP)

	log.Info("user logged in successfully", slog.String("user_id", sess.UserID))

	return sessionID, sess, nil
}

// Logout revokes the token at the data service and drops the session. A
// failed revoke is logged but does not keep the session alive.
func (a *Auth) Logout(ctx context.Context, sessionID string) error {
	const op = "auth.Logout"

	log := a.log.With(slog.String("op", op))

	if a.sessions == nil {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	sess, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		log.Error("failed to get session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.signer.SignOut(ctx, sess.AccessToken); err != nil {
		log.Warn("failed to revoke token", sl.Err(err))
	}

	if err := a.sessions.DeleteSession(ctx, sessionID); err != nil {
		log.Error("failed to delete session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged out", slog.String("user_id", sess.UserID))

	return nil
}

// Session returns the stored session and the user's profile row. The
// profile is nil when the user has none.
func (a *Auth) Session(ctx context.Context, sessionID string) (*models.AuthSession, *models.UserProfile, error) {
	const op = "auth.Session"

	log := a.log.With(slog.String("op", op))

	if a.sessions == nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	sess, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
		}
		log.Error("failed to get session", sl.Err(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		if err := a.sessions.DeleteSession(ctx, sessionID); err != nil {
			log.Warn("failed to delete expired session", sl.Err(err))
		}
		return nil, nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}

	profile, err := a.profiles.UserProfile(ctx, sess.AccessToken, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return sess, nil, nil
		}
		log.Error("failed to get user profile", sl.Err(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return sess, profile, nil
}

func (a *Auth) failedAttempts(clientIP string) int {
	v, ok := a.attempts.Get(clientIP)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}

func (a *Auth) recordFailure(clientIP string) {
	if _, err := a.attempts.IncrementInt(clientIP, 1); err != nil {
		a.attempts.Set(clientIP, 1, cache.DefaultExpiration)
	}
}
