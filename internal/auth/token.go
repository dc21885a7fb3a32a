package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// resetClaim is the claim binding a recovery token to one account identity.
const resetClaim = "reset_password"

// TokenService issues and verifies signed, time-bounded password-recovery
// tokens. Tokens are stateless HS256 JWTs signed with a server-held secret;
// verification is a pure computation over the token and wall-clock time.
type TokenService struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenService returns a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			// Strict decoding so any single-character change to the token,
			// including trailing base64 bits, invalidates it.
			jwt.WithStrictDecoding(),
		),
	}
}

// Issue creates a recovery token bound to the given user ID. A negative ttl
// produces an already-expired token, which is useful in tests.
func (s *TokenService) Issue(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		resetClaim: strconv.FormatUint(uint64(userID), 10),
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"jti":      uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify decodes the token, recomputes the signature and checks expiry,
// returning the bound user ID. Malformed, tampered and expired tokens are
// indistinguishable at this interface: all return (0, false).
func (s *TokenService) Verify(tokenString string) (uint, bool) {
	token, err := s.parser.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims[resetClaim].(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
