package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/domain"
	authUC "github.com/taskhive/backend/usecase/auth"
)

type fakeAuthService struct {
	registerToken string
	registerUser  *domain.User
	registerErr   error

	loginToken string
	loginUser  *domain.User
	loginErr   error

	verifyUser  *domain.User
	verifyErr   error
	verifyToken string
}

func (f *fakeAuthService) Register(ctx context.Context, in authUC.RegisterInput) (string, *domain.User, error) {
	return f.registerToken, f.registerUser, f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeAuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	f.verifyToken = token
	return f.verifyUser, f.verifyErr
}

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out))
	return out
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &fakeAuthService{
		registerToken: "tok",
		registerUser:  &domain.User{ID: "u1", Email: "a@x.com", Name: "A"},
	}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodPost, "/auth/register", []byte(`{"email":"a@x.com","password":"pw","name":"A"}`))
	h.Register(ctx)

	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	body := decodeBody(t, ctx)
	assert.Equal(t, "User created successfully", body["message"])
	assert.Equal(t, "tok", body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "a@x.com", user["email"])
}

func TestAuthHandler_RegisterConflict(t *testing.T) {
	svc := &fakeAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodPost, "/auth/register", []byte(`{"email":"a@x.com","password":"pw"}`))
	h.Register(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "User already exists", decodeBody(t, ctx)["message"])
}

func TestAuthHandler_RegisterBadJSON(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, nil, nil)

	ctx := newRequestCtx(http.MethodPost, "/auth/register", []byte(`{`))
	h.Register(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &fakeAuthService{
		loginToken: "tok",
		loginUser:  &domain.User{ID: "u1", Email: "a@x.com"},
	}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodPost, "/auth/login", []byte(`{"email":"a@x.com","password":"pw"}`))
	h.Login(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	body := decodeBody(t, ctx)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "tok", body["token"])
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodPost, "/auth/login", []byte(`{"email":"a@x.com","password":"bad"}`))
	h.Login(ctx)

	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, "Invalid credentials", decodeBody(t, ctx)["message"])
}

func TestAuthHandler_Verify(t *testing.T) {
	svc := &fakeAuthService{verifyUser: &domain.User{ID: "u1", Email: "a@x.com"}}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodGet, "/auth/verify", nil)
	ctx.Request.Header.Set("Authorization", "Bearer tok-1")
	h.Verify(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "tok-1", svc.verifyToken)
	user := decodeBody(t, ctx)["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["id"])
}

func TestAuthHandler_VerifyNoToken(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, nil, nil)

	for _, header := range []string{"", "tok-1", "bearer tok-1"} {
		ctx := newRequestCtx(http.MethodGet, "/auth/verify", nil)
		if header != "" {
			ctx.Request.Header.Set("Authorization", header)
		}
		h.Verify(ctx)

		assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
		assert.Equal(t, "No token provided", decodeBody(t, ctx)["message"])
	}
}

func TestAuthHandler_VerifyInvalidToken(t *testing.T) {
	svc := &fakeAuthService{verifyErr: domain.ErrInvalidToken}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodGet, "/auth/verify", nil)
	ctx.Request.Header.Set("Authorization", "Bearer bad")
	h.Verify(ctx)

	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, "Invalid token", decodeBody(t, ctx)["message"])
}

func TestAuthHandler_InternalErrorIsOpaque(t *testing.T) {
	svc := &fakeAuthService{loginErr: assert.AnError}
	h := NewAuthHandler(svc, nil, nil)

	ctx := newRequestCtx(http.MethodPost, "/auth/login", []byte(`{"email":"a@x.com","password":"pw"}`))
	h.Login(ctx)

	assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Equal(t, "Internal server error", decodeBody(t, ctx)["message"])
}
