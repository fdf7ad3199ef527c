package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository/postgres"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/service/auth/tokenmanager"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/testutil"
)

func Test_AuthService(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	newService := func(t *testing.T, tx pgx.Tx) *AuthService {
		t.Helper()

		manager, err := tokenmanager.New(tokenmanager.Config{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		})
		require.NoError(t, err)

		service, err := NewService(Config{}, manager, postgres.NewStorage(tx))
		require.NoError(t, err, "auth service should be created without errors")
		return service
	}

	t.Run("register hashes the password", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			user, err := service.Register(t.Context(), "nk@example.com", "password")

			require.NoError(t, err)
			assert.Equal(t, "nk@example.com", user.Email)
			assert.NotEqual(t, "password", user.HashedPassword, "password must never be stored as plaintext")
			assert.NoError(t, DefaultHasher.Compare(user.HashedPassword, "password"))
		})
	})

	t.Run("register duplicate email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			_, err = service.Register(t.Context(), "nk@example.com", "other-password")
			require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})
	})

	t.Run("login ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			registered, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			user, pair, err := service.Login(t.Context(), "nk@example.com", "password")

			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.NotEmpty(t, pair.Access.Value)
			assert.NotEmpty(t, pair.Refresh.Value)
		})
	})

	t.Run("login persists the refresh token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			user, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			_, pair, err := service.Login(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			repo := postgres.RefreshTokenRepo{DB: tx}
			saved, err := repo.GetValid(t.Context(), pair.Refresh.Value, user.ID, time.Now())
			require.NoError(t, err, "issued refresh token should be stored")
			assert.Equal(t, user.ID, saved.UserID)
		})
	})

	t.Run("login wrong password", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			_, _, err = service.Login(t.Context(), "nk@example.com", "wrong")
			require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	})

	t.Run("login unknown email returns the same error", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, _, err := service.Login(t.Context(), "ghost@example.com", "password")

			require.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown email must be indistinguishable from wrong password")
			require.NotErrorIs(t, err, apperrors.ErrUserNotFound, "user lookup outcome must not leak")
		})
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)
			_, pair, err := service.Login(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			rotated, err := service.Refresh(t.Context(), pair.Refresh.Value)

			require.NoError(t, err)
			assert.NotEmpty(t, rotated.Access.Value)
			assert.NotEqual(t, pair.Refresh.Value, rotated.Refresh.Value, "rotation must issue a new refresh token")
		})
	})

	t.Run("refresh token is single use", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)
			_, pair, err := service.Login(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			_, err = service.Refresh(t.Context(), pair.Refresh.Value)
			require.NoError(t, err)

			_, err = service.Refresh(t.Context(), pair.Refresh.Value)
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "consumed token must be rejected")
		})
	})

	t.Run("refresh rejects garbage", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, err := service.Refresh(t.Context(), "not-a-jwt")
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("refresh rejects an access token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			service := newService(t, tx)

			_, err := service.Register(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)
			_, pair, err := service.Login(t.Context(), "nk@example.com", "password")
			require.NoError(t, err)

			_, err = service.Refresh(t.Context(), pair.Access.Value)
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("GetUserFromRequest", func(t *testing.T) {
		t.Run("resolves the bearer token", func(t *testing.T) {
			testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
				service := newService(t, tx)

				registered, err := service.Register(t.Context(), "nk@example.com", "password")
				require.NoError(t, err)
				_, pair, err := service.Login(t.Context(), "nk@example.com", "password")
				require.NoError(t, err)

				r := httptest.NewRequest("GET", "/users/me", nil)
				r.Header.Set("Authorization", "Bearer "+pair.Access.Value)

				user, err := service.GetUserFromRequest(t.Context(), r)

				require.NoError(t, err)
				assert.Equal(t, registered.ID, user.ID)
			})
		})

		t.Run("missing header", func(t *testing.T) {
			testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
				service := newService(t, tx)

				r := httptest.NewRequest("GET", "/users/me", nil)

				_, err := service.GetUserFromRequest(t.Context(), r)
				require.ErrorIs(t, err, apperrors.ErrTokenMissing)
			})
		})

		t.Run("garbage token", func(t *testing.T) {
			testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
				service := newService(t, tx)

				r := httptest.NewRequest("GET", "/users/me", nil)
				r.Header.Set("Authorization", "Bearer not-a-jwt")

				_, err := service.GetUserFromRequest(t.Context(), r)
				require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
			})
		})
	})
}

func Test_BearerToken(t *testing.T) {
	t.Parallel()

	t.Run("extracts the token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer abc.def.ghi")

		token, err := BearerToken(r)

		require.NoError(t, err)
		require.Equal(t, "abc.def.ghi", token)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)

		_, err := BearerToken(r)
		require.ErrorIs(t, err, apperrors.ErrTokenMissing)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwd2Q=")

		_, err := BearerToken(r)
		require.ErrorIs(t, err, apperrors.ErrTokenMissing)
	})

	t.Run("bearer with no token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer ")

		_, err := BearerToken(r)
		require.ErrorIs(t, err, apperrors.ErrTokenMissing)
	})
}
