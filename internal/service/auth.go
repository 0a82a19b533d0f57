package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/config"
	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthService interface {
	LoginUser(ctx context.Context, creds client.Credentials) (*model.Session, error)
	LoginStaff(ctx context.Context, creds client.Credentials) (*model.Session, error)
	Register(ctx context.Context, reg client.Registration) error
	Logout(ctx context.Context, sess *model.Session) error
	Resolve(ctx context.Context, sessionID string) (*model.Session, error)
	Profile(ctx context.Context, sess *model.Session) (*model.User, error)
	UpdateProfile(ctx context.Context, sess *model.Session, upd client.ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, sess *model.Session, oldPassword, newPassword string) error
}

type authServiceImpl struct {
	backend  client.AuthAPI
	sessions repository.SessionRepository
	ttl      time.Duration
}

func NewAuthService(backend client.AuthAPI, sessions repository.SessionRepository, cfg *config.Session) AuthService {
	return &authServiceImpl{
		backend:  backend,
		sessions: sessions,
		ttl:      cfg.TTL,
	}
}

func (s *authServiceImpl) LoginUser(ctx context.Context, creds client.Credentials) (*model.Session, error) {
	result, err := s.backend.LoginUser(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.storeSession(ctx, result, false)
}

func (s *authServiceImpl) LoginStaff(ctx context.Context, creds client.Credentials) (*model.Session, error) {
	result, err := s.backend.LoginStaff(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.storeSession(ctx, result, true)
}

func (s *authServiceImpl) Register(ctx context.Context, reg client.Registration) error {
	return s.backend.RegisterUser(ctx, reg)
}

func (s *authServiceImpl) Logout(ctx context.Context, sess *model.Session) error {
	return s.sessions.Delete(ctx, sess.ID)
}

// Resolve loads a session by cookie id. An expired token answers with
// ErrAuthExpired without a backend round trip.
func (s *authServiceImpl) Resolve(ctx context.Context, sessionID string) (*model.Session, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, client.ErrAuthExpired
	}
	return sess, nil
}

// Profile reads the account fresh from the backend; the session snapshot
// is a login-time copy and may lag behind.
func (s *authServiceImpl) Profile(ctx context.Context, sess *model.Session) (*model.User, error) {
	return s.backend.Me(ctx, sess.Token)
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, sess *model.Session, upd client.ProfileUpdate) (*model.User, error) {
	if strings.TrimSpace(upd.FullName) == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"fullName": "full name is required",
		}}
	}
	return s.backend.UpdateMe(ctx, sess.Token, upd)
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, sess *model.Session, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Fields: map[string]string{
			"newPassword": "new password must have at least 6 characters",
		}}
	}
	return s.backend.ChangePassword(ctx, sess.Token, oldPassword, newPassword)
}

func (s *authServiceImpl) storeSession(ctx context.Context, result *client.LoginResult, staff bool) (*model.Session, error) {
	sess := &model.Session{
		ID:        uuid.NewString(),
		Token:     result.AccessToken,
		Staff:     staff,
		ExpiresAt: s.tokenExpiry(result.AccessToken),
	}
	if err := sess.SetUser(&result.User); err != nil {
		return nil, fmt.Errorf("encode user snapshot: %w", err)
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// tokenExpiry reads exp from the bearer token without verifying the
// signature; the backend owns the key and the 401 path stays the real
// authority. Tokens without a readable exp fall back to the session TTL.
func (s *authServiceImpl) tokenExpiry(token string) time.Time {
	fallback := time.Now().Add(s.ttl)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}
