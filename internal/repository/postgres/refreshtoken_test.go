package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/testutil"
)

func Test_RefreshTokenRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	newToken := func(userID uuid.UUID, expiresAt time.Time) models.RefreshToken {
		return models.RefreshToken{
			ID:        uuid.New(),
			UserID:    userID,
			Token:     "secret-token-" + uuid.NewString(),
			CreatedAt: time.Now().Truncate(time.Second),
			ExpiresAt: expiresAt,
		}
	}

	t.Run("save token ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			user := createTestUser(t, tx, "nk@example.com")
			token := newToken(user.ID, time.Now().Add(7*24*time.Hour).Truncate(time.Second))

			got, err := repo.Save(t.Context(), token)

			require.NoError(t, err)
			require.Equal(t, token.ID, got.ID)
			require.Equal(t, token.UserID, got.UserID)
			require.Equal(t, token.Token, got.Token)
			require.WithinDuration(t, token.CreatedAt, got.CreatedAt, time.Microsecond)
			require.WithinDuration(t, token.ExpiresAt, got.ExpiresAt, time.Microsecond)
		})
	})

	t.Run("get valid token ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			user := createTestUser(t, tx, "nk@example.com")
			token := newToken(user.ID, time.Now().Add(7*24*time.Hour).Truncate(time.Second))

			_, err := repo.Save(t.Context(), token)
			require.NoError(t, err)

			got, err := repo.GetValid(t.Context(), token.Token, user.ID, time.Now())

			require.NoError(t, err)
			require.Equal(t, token.ID, got.ID)
			require.Equal(t, token.Token, got.Token)
			require.Equal(t, token.UserID, got.UserID)
		})
	})

	t.Run("get valid scoped by owner", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			owner := createTestUser(t, tx, "owner@example.com")
			other := createTestUser(t, tx, "other@example.com")
			token := newToken(owner.ID, time.Now().Add(7*24*time.Hour))

			_, err := repo.Save(t.Context(), token)
			require.NoError(t, err)

			_, err = repo.GetValid(t.Context(), token.Token, other.ID, time.Now())

			require.Error(t, err, "token presented by the wrong user must look unknown")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("get valid skips expired", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			user := createTestUser(t, tx, "nk@example.com")
			token := newToken(user.ID, time.Now().Add(-time.Minute))

			_, err := repo.Save(t.Context(), token)
			require.NoError(t, err)

			_, err = repo.GetValid(t.Context(), token.Token, user.ID, time.Now())

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("get valid unknown token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}

			_, err := repo.GetValid(t.Context(), "never-issued", uuid.New(), time.Now())

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("delete token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			user := createTestUser(t, tx, "nk@example.com")
			token := newToken(user.ID, time.Now().Add(7*24*time.Hour))

			_, err := repo.Save(t.Context(), token)
			require.NoError(t, err)

			err = repo.Delete(t.Context(), token.ID)
			require.NoError(t, err)

			_, err = repo.GetValid(t.Context(), token.Token, user.ID, time.Now())
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "deleted token must be unknown")

			err = repo.Delete(t.Context(), token.ID)
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "second delete must report missing row")
		})
	})

	t.Run("delete expired", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			user := createTestUser(t, tx, "nk@example.com")

			expired := newToken(user.ID, time.Now().Add(-time.Minute))
			alive := newToken(user.ID, time.Now().Add(7*24*time.Hour))

			_, err := repo.Save(t.Context(), expired)
			require.NoError(t, err)
			_, err = repo.Save(t.Context(), alive)
			require.NoError(t, err)

			deleted, err := repo.DeleteExpired(t.Context(), time.Now())

			require.NoError(t, err)
			assert.Equal(t, int64(1), deleted, "only the expired token should be deleted")

			_, err = repo.GetValid(t.Context(), alive.Token, user.ID, time.Now())
			require.NoError(t, err, "alive token should survive cleanup")
		})
	})
}
