// internal/auth/middleware.go
// Request authentication. Session issuance lives in a separate service; this
// package only validates its tokens and resolves the acting user.

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/linkupapp/linkup-backend/internal/common/utils"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Actor is the authenticated caller resolved from the token
type Actor struct {
	ID    int64
	Name  string
	Email string
}

// Claims are the JWT claims issued by the auth service
type Claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

type ctxKey int

const actorKey ctxKey = 0

// Middleware resolves the current actor from the Authorization header
type Middleware struct {
	secret string
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: secret}
}

// Authenticate protects routes: a valid access token is required
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, utils.StatusForbidden, "Missing or invalid authorization header")
			return
		}

		actor, err := m.validate(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, utils.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate is for routes where auth is optional. It adds the actor
// to the context when a valid token is present but never fails the request.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := m.validate(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFrom returns the authenticated actor, if any
func ActorFrom(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*Actor)
	return actor, ok
}

// WithActor injects an actor into the context; used by tests
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func (m *Middleware) validate(tokenString string) (*Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != "access" {
		return nil, ErrInvalidToken
	}

	return &Actor{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
