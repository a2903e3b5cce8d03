package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies signed identity assertions. It is
// stateless: verification needs no lookup, only the shared secret injected at
// construction time.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

func NewTokenService(secret string, ttl time.Duration, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, log: log}
}

// Issue signs a token asserting subjectID, valid until now + TTL.
func (s *TokenService) Issue(subjectID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses the token, checks signature and expiry, and returns the
// subject id. Every rejection is reported as domain.ErrTokenInvalid; the
// underlying cause is logged but never surfaced to the caller.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		s.log.Debug().Err(err).Msg("token rejected")
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
