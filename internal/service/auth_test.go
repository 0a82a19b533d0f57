package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/config"
	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/repository"
	"apparel-shopfront/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	loginUserFunc      func(ctx context.Context, creds client.Credentials) (*client.LoginResult, error)
	loginStaffFunc     func(ctx context.Context, creds client.Credentials) (*client.LoginResult, error)
	updateMeFunc       func(ctx context.Context, token string, upd client.ProfileUpdate) (*model.User, error)
	changePasswordFunc func(ctx context.Context, token, oldPassword, newPassword string) error
}

func (f *fakeAuthAPI) LoginUser(ctx context.Context, creds client.Credentials) (*client.LoginResult, error) {
	return f.loginUserFunc(ctx, creds)
}

func (f *fakeAuthAPI) LoginStaff(ctx context.Context, creds client.Credentials) (*client.LoginResult, error) {
	return f.loginStaffFunc(ctx, creds)
}

func (f *fakeAuthAPI) RegisterUser(ctx context.Context, reg client.Registration) error {
	return nil
}

func (f *fakeAuthAPI) Me(ctx context.Context, token string) (*model.User, error) {
	return &model.User{}, nil
}

func (f *fakeAuthAPI) UpdateMe(ctx context.Context, token string, upd client.ProfileUpdate) (*model.User, error) {
	if f.updateMeFunc == nil {
		return nil, errors.New("unexpected UpdateMe call")
	}
	return f.updateMeFunc(ctx, token, upd)
}

func (f *fakeAuthAPI) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	if f.changePasswordFunc == nil {
		return errors.New("unexpected ChangePassword call")
	}
	return f.changePasswordFunc(ctx, token, oldPassword, newPassword)
}

type memSessionRepo struct {
	sessions map[string]*model.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*model.Session{}}
}

func (r *memSessionRepo) Create(ctx context.Context, sess *model.Session) error {
	r.sessions[sess.ID] = sess
	return nil
}

func (r *memSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	sess, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return sess, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, sess := range r.sessions {
		if sess.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newAuth(api client.AuthAPI, repo repository.SessionRepository) service.AuthService {
	return service.NewAuthService(api, repo, &config.Session{
		CookieName: "shop_session",
		TTL:        720 * time.Hour,
	})
}

func TestAuthService_LoginUser_ReadsTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})

	api := &fakeAuthAPI{
		loginUserFunc: func(ctx context.Context, creds client.Credentials) (*client.LoginResult, error) {
			return &client.LoginResult{
				AccessToken: token,
				User:        model.User{ID: 1, FullName: "Nguyen Van A", Email: creds.Email},
			}, nil
		},
	}
	repo := newMemSessionRepo()

	sess, err := newAuth(api, repo).LoginUser(context.Background(), client.Credentials{Email: "a@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, token, sess.Token)
	assert.False(t, sess.Staff)
	assert.WithinDuration(t, exp, sess.ExpiresAt, time.Second)

	user := sess.User()
	require.NotNil(t, user)
	assert.Equal(t, "a@example.com", user.Email)

	stored, err := repo.FindByID(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, stored.Token)
}

func TestAuthService_Login_FallsBackToTTLWithoutExp(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "opaque_token", token: "not-a-jwt"},
		{name: "jwt_without_exp", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			if token == "" {
				token = signedToken(t, jwt.MapClaims{"sub": "1"})
			}

			api := &fakeAuthAPI{
				loginUserFunc: func(ctx context.Context, creds client.Credentials) (*client.LoginResult, error) {
					return &client.LoginResult{AccessToken: token}, nil
				},
			}

			sess, err := newAuth(api, newMemSessionRepo()).LoginUser(context.Background(), client.Credentials{})

			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(720*time.Hour), sess.ExpiresAt, time.Minute)
		})
	}
}

func TestAuthService_LoginStaff_MarksSessionStaff(t *testing.T) {
	api := &fakeAuthAPI{
		loginStaffFunc: func(ctx context.Context, creds client.Credentials) (*client.LoginResult, error) {
			return &client.LoginResult{
				AccessToken: signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
				User:        model.User{ID: 2, Role: "ADMIN"},
			}, nil
		},
	}

	sess, err := newAuth(api, newMemSessionRepo()).LoginStaff(context.Background(), client.Credentials{})

	require.NoError(t, err)
	assert.True(t, sess.Staff)
}

func TestAuthService_Resolve(t *testing.T) {
	repo := newMemSessionRepo()
	svc := newAuth(&fakeAuthAPI{}, repo)

	live := &model.Session{ID: "live", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	expired := &model.Session{ID: "stale", Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Create(context.Background(), live))
	require.NoError(t, repo.Create(context.Background(), expired))

	t.Run("live_session_resolves", func(t *testing.T) {
		sess, err := svc.Resolve(context.Background(), "live")
		require.NoError(t, err)
		assert.Equal(t, "tok", sess.Token)
	})

	t.Run("expired_session_answers_auth_expired_and_is_dropped", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "stale")
		assert.ErrorIs(t, err, client.ErrAuthExpired)

		_, err = repo.FindByID(context.Background(), "stale")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("unknown_session_id", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("blank_name_blocked_before_network", func(t *testing.T) {
		api := &fakeAuthAPI{
			updateMeFunc: func(ctx context.Context, token string, upd client.ProfileUpdate) (*model.User, error) {
				t.Fatal("no update request may be issued for a blank name")
				return nil, nil
			},
		}

		_, err := newAuth(api, newMemSessionRepo()).UpdateProfile(context.Background(), testSession(), client.ProfileUpdate{FullName: "   "})

		var valErr *service.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Fields, "fullName")
	})

	t.Run("passes_through_and_returns_updated_user", func(t *testing.T) {
		api := &fakeAuthAPI{
			updateMeFunc: func(ctx context.Context, token string, upd client.ProfileUpdate) (*model.User, error) {
				return &model.User{ID: 1, FullName: upd.FullName}, nil
			},
		}

		user, err := newAuth(api, newMemSessionRepo()).UpdateProfile(context.Background(), testSession(), client.ProfileUpdate{FullName: "Le Van C"})

		require.NoError(t, err)
		assert.Equal(t, "Le Van C", user.FullName)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("short_password_blocked_before_network", func(t *testing.T) {
		api := &fakeAuthAPI{
			changePasswordFunc: func(ctx context.Context, token, oldPassword, newPassword string) error {
				t.Fatal("no password request may be issued for a short password")
				return nil
			},
		}

		err := newAuth(api, newMemSessionRepo()).ChangePassword(context.Background(), testSession(), "old-secret", "12345")

		var valErr *service.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Fields, "newPassword")
	})

	t.Run("passes_both_passwords_through", func(t *testing.T) {
		var gotOld, gotNew string
		api := &fakeAuthAPI{
			changePasswordFunc: func(ctx context.Context, token, oldPassword, newPassword string) error {
				gotOld, gotNew = oldPassword, newPassword
				return nil
			},
		}

		err := newAuth(api, newMemSessionRepo()).ChangePassword(context.Background(), testSession(), "old-secret", "new-secret")

		require.NoError(t, err)
		assert.Equal(t, "old-secret", gotOld)
		assert.Equal(t, "new-secret", gotNew)
	})
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	repo := newMemSessionRepo()
	sess := &model.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(context.Background(), sess))

	require.NoError(t, newAuth(&fakeAuthAPI{}, repo).Logout(context.Background(), sess))

	_, err := repo.FindByID(context.Background(), "s1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
