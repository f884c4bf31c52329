package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/darsyar/internal/pkg/jwt"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/internal/utils"
)

// Echo context keys set by SessionMiddleware
const (
	ContextUserID   = "user_id"
	ContextPhone    = "phone"
	ContextIdentity = "identity"
)

type identityKey struct{}

// AccessTokenParser verifies access tokens
type AccessTokenParser interface {
	ParseAccessToken(token string) (*jwtpkg.AccessClaims, error)
}

// SessionMiddleware authenticates requests with a bearer access token.
// No credentials gives 401; bad credentials give 403.
func SessionMiddleware(parser AccessTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Access token required")
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				return utils.UnauthorizedResponse(c, "Access token required")
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Access token required")
			}

			claims, err := parser.ParseAccessToken(token)
			if err != nil {
				return utils.ForbiddenResponse(c, "Invalid or expired token")
			}

			identity := models.Identity{UserID: claims.UserID, Phone: claims.Phone}
			c.Set(ContextUserID, identity.UserID)
			c.Set(ContextPhone, identity.Phone)
			c.Set(ContextIdentity, identity)
			c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), identity)))
			AddAttribute(c, "user.id", identity.UserID)

			return next(c)
		}
	}
}

// WithIdentity returns a copy of ctx carrying the caller identity
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity stored by SessionMiddleware
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	return identity, ok
}

// GetIdentity reads the identity from the echo context
func GetIdentity(c echo.Context) (models.Identity, bool) {
	identity, ok := c.Get(ContextIdentity).(models.Identity)
	return identity, ok
}
