package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/muss3ab/tsh/internal/dto"
	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for user info
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxClaims   = "claims"
)

// TokenRevoker reports whether a token id was blacklisted by logout.
type TokenRevoker interface {
	IsTokenRevoked(ctx context.Context, jti string) bool
}

// AuthRequired validates the Bearer token and injects user info into the
// request context.
func AuthRequired(tokens service.TokenProvider, revoker TokenRevoker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}

		claims, err := tokens.ParseAndValidateAccess(c.Request.Context(), token)
		if err != nil {
			log.Warn("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}
		if revoker != nil && revoker.IsTokenRevoked(c.Request.Context(), claims.JTI) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("token revoked"))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, models.Role(claims.Role))
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(CtxUserRole)
		if !ok || role.(models.Role) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("admin access required"))
			return
		}
		c.Next()
	}
}

// ServiceContext rebuilds the service-layer context (user id + role) from the
// values AuthRequired stored on the gin context.
func ServiceContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if v, ok := c.Get(CtxUserID); ok {
		ctx = service.WithUserID(ctx, v.(uuid.UUID))
	}
	if v, ok := c.Get(CtxUserRole); ok {
		ctx = service.WithRole(ctx, v.(models.Role))
	}
	return ctx
}

// ExtractBearerToken pulls the token out of the Authorization header,
// tolerating stray quotes and trailing junk.
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.TrimSpace(parts[1])
	t = strings.Trim(t, " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	return t, true
}
