package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"
	"webguard/internal/config"
	"webguard/pkg/controller"
	"webguard/pkg/domain"
	"webguard/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
)

// SecHandlerOptions configure bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key used to verify RS256 tokens.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler authenticates requests carrying an RS256 JWT whose subject is
// the user ID.
type SecHandler struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{
		publicKey: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

// UserIDKey is the context key under which the authenticated user ID is stored.
const UserIDKey controller.CtxKey = "UserID"

// GetUserIDFromContext returns the authenticated user ID. It is the zero ID
// outside authenticated routes.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	id, _ := ctx.Value(UserIDKey).(domain.UserID)

	return id
}

// HandleBearerAuth verifies token and returns ctx carrying the user ID.
func (s SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	}); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, userID), nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}

	return ""
}

// Middleware rejects requests without a valid Authorization bearer token.
func (s SecHandler) Middleware(next http.Handler) http.Handler {
	return s.middleware(next, false)
}

// StreamMiddleware is Middleware that also accepts the token in the
// access_token query parameter, since EventSource cannot set headers.
func (s SecHandler) StreamMiddleware(next http.Handler) http.Handler {
	return s.middleware(next, true)
}

func (s SecHandler) middleware(next http.Handler, allowQuery bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" && allowQuery {
			token = r.URL.Query().Get("access_token")
		}
		if token == "" {
			controller.WriteError(w, http.StatusUnauthorized,
				serrors.ErrUnauthorized.Error(), "authentication required")

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			controller.WriteError(w, http.StatusUnauthorized, serrors.ErrUnauthorized.Error(), serrors.MessageOf(err))

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
