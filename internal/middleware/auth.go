package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/auth"
)

// JWTAuth verifies the bearer token and injects the authenticated user id
// into the X-User-ID request header. Any value a client put there itself is
// discarded first, so downstream handlers only ever see the verified
// identity.
func JWTAuth(secret []byte, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Del("X-User-ID")

			tokenString := extractToken(ctx)
			if tokenString == "" {
				unauthorized(ctx, domain.ErrNoToken.Message)
				return
			}

			claims, err := auth.ParseToken(secret, tokenString)
			if err != nil {
				logger.Warn("invalid bearer token", zap.Error(err))
				unauthorized(ctx, domain.ErrInvalidToken.Message)
				return
			}

			ctx.Request.Header.Set("X-User-ID", claims.UserID)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.MessageResponse{Message: message})
	ctx.SetBody(body)
}
