package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

const (
	claimsKey = "auth_claims"

	// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
	RefreshCookieName = "refresh_token"
)

// TokenSource is the capability the gate needs: verifying presented tokens
// and minting replacement access tokens during renewal.
type TokenSource interface {
	Verify(token string) Outcome
	IssueAccessToken(claims *Claims) (string, time.Time, error)
}

// Middleware authenticates requests and transparently renews expired
// access tokens from the refresh cookie.
type Middleware struct {
	tokens TokenSource
}

// NewMiddleware constructs the request gate.
func NewMiddleware(tokens TokenSource) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
//
// An expired access token is not terminal: when a valid refresh token is
// present, a fresh access token is minted from its claims and surfaced to
// the client via the Authorization response header. Refresh tokens are
// never themselves renewed.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	outcome := m.tokens.Verify(parts[1])
	switch outcome.Status {
	case StatusValid:
		c.Locals(claimsKey, outcome.Claims)
		return c.Next()
	case StatusExpired:
		return m.renew(c)
	default:
		return apperrors.NewUnauthorized("invalid token")
	}
}

func (m *Middleware) renew(c *fiber.Ctx) error {
	refreshToken := c.Cookies(RefreshCookieName)
	if refreshToken == "" {
		return apperrors.NewBadRequest("you may need to login again")
	}

	outcome := m.tokens.Verify(refreshToken)
	if outcome.Status != StatusValid {
		return apperrors.NewUnauthorized("refresh token invalid or expired")
	}

	accessToken, _, err := m.tokens.IssueAccessToken(outcome.Claims)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)
	c.Locals(claimsKey, outcome.Claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated identity.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
