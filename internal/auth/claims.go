package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by a miotlang access token. Only the
// registered claims are used; the subject is the admin username.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed JWT access token for the configured
// admin credential. Access tokens are short-lived (configured TTL) and
// validated by signature only.
func GenerateAccessToken(username, secret string, ttlMinutes int) (string, error) {
	if ttlMinutes <= 0 {
		ttlMinutes = 15
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlMinutes) * time.Minute)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// ParseToken validates and parses a JWT access token, returning the claims.
// It checks the signature, expiry, and required fields.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	return claims, nil
}

// Authenticate verifies a username/password pair against the configured
// admin credential.
//
// Parameters:
//   - username, password: Presented credentials
//   - wantUsername: Configured admin username
//   - passwordHash: Configured Argon2id PHC hash
//
// Returns:
//   - error: ErrInvalidCredentials on any mismatch
func Authenticate(username, password, wantUsername, passwordHash string) error {
	// Verify the hash even on username mismatch so response timing does not
	// reveal which field was wrong.
	ok, err := VerifyPassword(password, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if !ok || username != wantUsername {
		return ErrInvalidCredentials
	}
	return nil
}
