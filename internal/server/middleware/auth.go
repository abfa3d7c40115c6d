package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authsvc/internal/authctx"
	apperrors "github.com/skillsenselab/authsvc/internal/errors"
)

// AuthConfig configures the authentication gate.
type AuthConfig struct {
	// Validator validates a raw bearer token and returns the identity it
	// proves. Any error rejects the request.
	Validator func(token string) (authctx.Identity, error)

	// PublicPrefixes are URL path prefixes that bypass authentication
	// (registration and login endpoints).
	PublicPrefixes []string
}

// Auth returns the gate middleware that classifies every inbound request.
//
// CORS preflight requests and public-prefix paths are admitted without an
// identity. Everything else must carry a valid Bearer token; on success the
// verified identity is attached to the request context, on any failure the
// request is rejected with a single uniform 401 envelope. The gate never
// reveals which validation step failed.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range cfg.PublicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			rejectUnauthorized(c)
			return
		}

		identity, err := cfg.Validator(raw)
		if err != nil {
			rejectUnauthorized(c)
			return
		}

		ctx := authctx.Set(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// rejectUnauthorized short-circuits the pipeline with the uniform
// authentication-failure envelope.
func rejectUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.InvalidToken().ToBody())
}
