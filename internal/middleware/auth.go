package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated caller, taken from a verified bearer token.
type User struct {
	ID    string
	Email string
}

// Claims are the JWT claims the API understands. The subject is the user id;
// email is optional and is used to record trip ownership.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type (
	userKey     struct{}
	userSinkKey struct{}
)

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the authenticated user, if any.
func UserFrom(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok
}

// withUserSink lets an outer middleware observe the user an inner
// authenticator resolves.
func withUserSink(ctx context.Context, sink *User) context.Context {
	return context.WithValue(ctx, userSinkKey{}, sink)
}

// NewAuthenticator returns a middleware that verifies an optional HS256
// bearer token. Requests without an Authorization header pass through
// anonymously; services reject them where a user is required. A header that
// is present but malformed, expired, or signed with another key gets 401.
func NewAuthenticator(secret []byte) func(http.Handler) http.Handler {
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}

			var claims Claims
			tok, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, keyFunc)
			if err != nil || !tok.Valid || claims.Subject == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}

			u := User{ID: claims.Subject, Email: claims.Email}
			if sink, ok := r.Context().Value(userSinkKey{}).(*User); ok {
				*sink = u
			}
			ctx := WithUser(r.Context(), u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SignToken issues an HS256 token for u that expires after ttl.
func SignToken(secret []byte, u User, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
