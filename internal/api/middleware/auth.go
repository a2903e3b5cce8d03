package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/donelist/task-service/internal/api/metrics"
	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
)

// UserIDKey is the echo context key under which Auth stores the resolved
// owner id. Handlers must read the identity from here and nowhere else.
const UserIDKey = "user_id"

// Auth is the single choke point for caller identity. It extracts the bearer
// token, verifies it, checks that the asserted subject is a well-formed
// storage id, and injects the resolved owner id into the request context.
// No handler behind it ever sees a raw credential.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_credential").Inc()
				return domain.ErrMissingCredential
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_credential").Inc()
				return domain.ErrMissingCredential
			}

			subject, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return err
			}

			if _, err := primitive.ObjectIDFromHex(subject); err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("malformed_identity").Inc()
				return domain.ErrMalformedIdentity
			}

			c.Set(UserIDKey, subject)
			return next(c)
		}
	}
}
