package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/product-store/internal/domain"
)

// ErrSecretMissing indicates the signing secret was never configured.
// This is a startup misconfiguration, not a runtime condition.
var ErrSecretMissing = errors.New("jwt signing secret not configured")

// Status is the three-way result of token verification. Expired is kept
// distinct from Invalid because only expired tokens may be renewed.
type Status int

const (
	StatusInvalid Status = iota
	StatusExpired
	StatusValid
)

// Outcome reports verification status plus the decoded claims. Claims are
// populated for both Valid and Expired tokens; the renewal path needs the
// claims of an expired token.
type Outcome struct {
	Status Status
	Claims *Claims
}

// Clock supplies the current time. Injected so expiry can be tested
// against a controlled time source.
type Clock func() time.Time

// Claims describes JWT payload.
type Claims struct {
	SubjectID string          `json:"sub_id"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies JWT tokens. It is stateless and safe
// for concurrent use.
type TokenManager struct {
	secret []byte
	clock  Clock
}

// NewTokenManager builds a new manager. A nil clock defaults to wall time.
func NewTokenManager(secret string, clock Clock) *TokenManager {
	if clock == nil {
		clock = time.Now
	}
	return &TokenManager{secret: []byte(secret), clock: clock}
}

// Sign builds and signs a token carrying the given identity, valid for ttl.
func (tm *TokenManager) Sign(subjectID, email string, role domain.UserRole, ttl time.Duration) (string, time.Time, error) {
	if len(tm.secret) == 0 {
		return "", time.Time{}, ErrSecretMissing
	}

	now := tm.clock()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify recomputes the signature and checks expiry.
func (tm *TokenManager) Verify(tokenStr string) Outcome {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.clock))

	if err != nil {
		// Signature failures shadow expiry: a tampered token is never
		// reported as merely expired.
		if errors.Is(err, jwt.ErrTokenExpired) &&
			!errors.Is(err, jwt.ErrTokenSignatureInvalid) &&
			!errors.Is(err, jwt.ErrTokenMalformed) {
			if parsed != nil {
				if claims, ok := parsed.Claims.(*Claims); ok {
					return Outcome{Status: StatusExpired, Claims: claims}
				}
			}
		}
		return Outcome{Status: StatusInvalid}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Outcome{Status: StatusInvalid}
	}
	return Outcome{Status: StatusValid, Claims: claims}
}
