package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/service/auth/tokenmanager"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during user registration or login process
	// Defaults to bcrypt if not set
	Hasher PasswordHasher
}

// Auth service: register, login and refresh token rotation
type AuthService struct {
	// Manager to issue and verify token pairs (access and refresh)
	token *tokenmanager.TokenManager

	// hasher to hash or compare user passwords
	hasher PasswordHasher

	// Compare target for login attempts with unknown email, so both
	// failure paths burn the same bcrypt cost
	dummyHash string

	// Repository to access long term data
	storage repository.Storage
}

func NewService(cfg Config, token *tokenmanager.TokenManager, storage repository.Storage) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if token == nil || storage == nil {
		return nil, errors.New("token manager and storage must not be nil")
	}

	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("error while preparing dummy hash. Err: %w", err)
	}

	return &AuthService{
		token:     token,
		hasher:    hasher,
		dummyHash: dummyHash,
		storage:   storage,
	}, nil
}

// Register creates user with hashed password
// Returns apperrors.ErrUserAlreadyExists if email is taken
func (s *AuthService) Register(ctx context.Context, email string, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.storage.User().CreateUser(ctx, email, hash)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login checks credentials and issues a token pair
// Unknown email and wrong password are indistinguishable:
// both return apperrors.ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error) {
	user, err := s.storage.User().GetUserByEmail(ctx, email)

	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrUserNotFound):
		// Burn the hash comparison anyway to keep timing close to the happy path
		_ = s.hasher.Compare(s.dummyHash, password)
		return models.User{}, models.TokenPair{}, apperrors.ErrInvalidCredentials
	default:
		return models.User{}, models.TokenPair{}, fmt.Errorf("error while looking up user. Err: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueAndSave(ctx, s.storage, user)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh rotates refresh token: the consumed row is deleted and the
// replacement inserted within single transaction, so a crash mid-rotation
// can't leave the user without a token
// Every rejection reason collapses to apperrors.ErrRefreshTokenNotFound
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	claims, err := s.token.ParseRefresh(refresh)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", apperrors.ErrRefreshTokenNotFound, err)
	}

	var pair models.TokenPair
	err = s.storage.InTx(ctx, func(store repository.Storage) error {
		token, err := store.Refresh().GetValid(ctx, refresh, claims.UserID, time.Now())
		if err != nil {
			return err
		}

		user, err := store.User().GetUserByID(ctx, token.UserID)
		if err != nil {
			return err
		}

		if err := store.Refresh().Delete(ctx, token.ID); err != nil {
			return err
		}

		pair, err = s.issueAndSave(ctx, store, user)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenNotFound), errors.Is(err, apperrors.ErrUserNotFound):
			return models.TokenPair{}, fmt.Errorf("%w: %w", apperrors.ErrRefreshTokenNotFound, err)
		default:
			return models.TokenPair{}, fmt.Errorf("error while rotating refresh token. Err: %w", err)
		}
	}

	return pair, nil
}

// GetUserFromRequest resolves the bearer access token to a stored user
// Token shape and signature are checked before any storage access
func (s *AuthService) GetUserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	access, err := BearerToken(r)
	if err != nil {
		return models.User{}, err
	}

	claims, err := s.token.ParseAccess(access)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.storage.User().GetUserByID(ctx, claims.UserID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// issueAndSave generates a fresh pair and persists the refresh part
func (s *AuthService) issueAndSave(ctx context.Context, store repository.Storage, user models.User) (models.TokenPair, error) {
	pair, err := s.token.IssuePair(user)
	if err != nil {
		return pair, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	_, err = store.Refresh().Save(ctx, models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     pair.Refresh.Value,
		CreatedAt: time.Now().Truncate(time.Second),
		ExpiresAt: pair.Refresh.ExpiresAt,
	})
	if err != nil {
		return pair, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return pair, nil
}

// BearerToken extracts token from the Authorization header
// Returns apperrors.ErrTokenMissing if the header is absent or not Bearer
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", apperrors.ErrTokenMissing
	}

	return token, nil
}
