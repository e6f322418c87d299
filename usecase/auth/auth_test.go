package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskhive/backend/domain"
	pkgauth "github.com/taskhive/backend/internal/auth"
	"github.com/taskhive/backend/repository"
)

type fakeUsers struct {
	byEmail map[string]*domain.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.User{}
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.ErrUserExists
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

type fakeCache struct {
	byID map[string]*domain.User

	getErr  error
	saveErr error

	saves int
}

var _ repository.UserCache = (*fakeCache)(nil)

func (f *fakeCache) Get(_ context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeCache) Save(_ context.Context, u *domain.User) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.byID == nil {
		f.byID = map[string]*domain.User{}
	}
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func newUseCase() (*UseCase, *fakeUsers, *fakeCache) {
	users := &fakeUsers{byEmail: map[string]*domain.User{}}
	cache := &fakeCache{byID: map[string]*domain.User{}}
	return New(users, cache, []byte("test-secret"), time.Hour, nil), users, cache
}

func TestRegister(t *testing.T) {
	t.Parallel()
	uc, _, cache := newUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, RegisterInput{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("want validation error on empty fields, got %v", err)
	}
	if _, _, err := uc.Register(ctx, RegisterInput{Email: "a@x.com"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("want validation error on missing password, got %v", err)
	}

	token, user, err := uc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Name: "A"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" || user.ID == "" {
		t.Fatalf("empty token or id: %q %+v", token, user)
	}
	if user.PasswordHash == "pw" || user.PasswordHash == "" {
		t.Fatalf("password stored unhashed or not at all")
	}
	if cache.saves == 0 {
		t.Fatalf("expected cache warm on register")
	}

	// Issued token must pass Verify.
	got, err := uc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify(fresh token): %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("verify returned wrong user: %+v", got)
	}

	// Second registration with the same email conflicts.
	if _, _, err := uc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw2"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("want ErrUserExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	uc, users, _ := newUseCase()
	ctx := context.Background()

	if _, _, err := uc.Login(ctx, "", ""); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("want validation error, got %v", err)
	}

	_, registered, err := uc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := uc.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("login result mismatch: %+v", user)
	}

	// Wrong password and unknown email produce the identical error.
	_, _, errWrongPw := uc.Login(ctx, "a@x.com", "nope")
	_, _, errNoUser := uc.Login(ctx, "ghost@x.com", "pw")
	if !errors.Is(errWrongPw, domain.ErrInvalidCredentials) || !errors.Is(errNoUser, domain.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for both, got %v / %v", errWrongPw, errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Fatalf("credential failures must be indistinguishable: %q vs %q", errWrongPw, errNoUser)
	}

	// Infrastructure failure is not masked as bad credentials.
	users.getErr = errors.New("connection refused")
	if _, _, err := uc.Login(ctx, "a@x.com", "pw"); errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not map to invalid credentials")
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()
	uc, users, cache := newUseCase()
	ctx := context.Background()

	if _, err := uc.Verify(ctx, "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for garbage, got %v", err)
	}

	token, user, err := uc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := uc.Verify(ctx, token)
	if err != nil || got.Email != user.Email {
		t.Fatalf("Verify: %v %+v", err, got)
	}

	// Cache down: verification falls through to the store.
	cache.getErr = errors.New("redis down")
	cache.saveErr = errors.New("redis down")
	if _, err := uc.Verify(ctx, token); err != nil {
		t.Fatalf("Verify with cache down: %v", err)
	}

	// Valid token, user gone: same failure as a bad token.
	delete(users.byEmail, "a@x.com")
	if _, err := uc.Verify(ctx, token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for deleted user, got %v", err)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byEmail: map[string]*domain.User{}}
	uc := New(users, nil, []byte("test-secret"), time.Hour, nil)
	ctx := context.Background()

	_, user, err := uc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	expired, err := pkgauth.IssueToken([]byte("test-secret"), user, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := uc.Verify(ctx, expired); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for expired token, got %v", err)
	}

	tampered, err := pkgauth.IssueToken([]byte("other-secret"), user, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := uc.Verify(ctx, tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for tampered token, got %v", err)
	}
}
