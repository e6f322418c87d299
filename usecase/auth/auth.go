package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	pkgauth "github.com/taskhive/backend/internal/auth"
	"github.com/taskhive/backend/repository"
)

// UseCase orchestrates registration, login and token verification.
type UseCase struct {
	users    repository.UserRepository
	cache    repository.UserCache
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, cache repository.UserCache, secret []byte, tokenTTL time.Duration, logger *zap.Logger) *UseCase {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		cache:    cache,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates the account and signs an initial token. Duplicate emails
// surface as domain.ErrUserExists straight from the unique constraint; there
// is no read-then-insert window.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (string, *domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return "", nil, domain.NewError(domain.ErrCodeInvalid, "Email and password are required")
	}

	digest, err := pkgauth.HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: digest,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := pkgauth.IssueToken(uc.secret, user, uc.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	uc.warmCache(ctx, user)
	return token, user, nil
}

// Login verifies credentials and issues a token. An unknown email and a wrong
// password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.NewError(domain.ErrCodeInvalid, "Email and password are required")
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !pkgauth.VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := pkgauth.IssueToken(uc.secret, user, uc.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Verify checks the token cryptographically and then re-fetches the user by
// the id in its claims, rather than trusting the claims alone. A valid token
// for a user that no longer exists fails the same way as a bad token.
func (uc *UseCase) Verify(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := pkgauth.ParseToken(uc.secret, tokenString)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if uc.cache != nil {
		if user, err := uc.cache.Get(ctx, claims.UserID); err == nil {
			return user, nil
		}
	}

	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	uc.warmCache(ctx, user)
	return user, nil
}

func (uc *UseCase) warmCache(ctx context.Context, user *domain.User) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Save(ctx, user); err != nil {
		uc.logger.Warn("failed to cache user", zap.String("user_id", user.ID), zap.Error(err))
	}
}
