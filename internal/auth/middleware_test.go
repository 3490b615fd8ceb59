package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/product-store/internal/api/http"
	"github.com/spec-kit/product-store/internal/auth"
	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/observability"
)

// testTokenSource mints and verifies tokens against a mutable clock.
type testTokenSource struct {
	tm        *auth.TokenManager
	accessTTL time.Duration
}

func (s *testTokenSource) Verify(token string) auth.Outcome {
	return s.tm.Verify(token)
}

func (s *testTokenSource) IssueAccessToken(claims *auth.Claims) (string, time.Time, error) {
	return s.tm.Sign(claims.SubjectID, claims.Email, claims.Role, s.accessTTL)
}

type gateFixture struct {
	app    *fiber.App
	tokens *testTokenSource
	now    *time.Time
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fixture := &gateFixture{now: &now}
	fixture.tokens = &testTokenSource{
		tm:        auth.NewTokenManager("test-secret", func() time.Time { return *fixture.now }),
		accessTTL: 15 * time.Minute,
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	gate := auth.NewMiddleware(fixture.tokens)
	app.Get("/protected", gate.Handle, func(c *fiber.Ctx) error {
		claims, ok := auth.ClaimsFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusInternalServerError, "claims missing")
		}
		return c.JSON(fiber.Map{"subject": claims.SubjectID})
	})

	fixture.app = app
	return fixture
}

func (f *gateFixture) request(t *testing.T, accessToken, refreshToken string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if refreshToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: refreshToken})
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGateMissingHeader(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateMalformedHeader(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateInvalidToken(t *testing.T) {
	f := newGateFixture(t)

	resp := f.request(t, "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateValidToken(t *testing.T) {
	f := newGateFixture(t)

	claims := &auth.Claims{SubjectID: "u1", Email: "u1@example.com", Role: domain.RoleUser}
	token, _, err := f.tokens.IssueAccessToken(claims)
	require.NoError(t, err)

	resp := f.request(t, token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Authorization"))
}

func TestGateExpiredWithoutRefreshCookie(t *testing.T) {
	f := newGateFixture(t)

	claims := &auth.Claims{SubjectID: "u1", Email: "u1@example.com", Role: domain.RoleUser}
	token, _, err := f.tokens.IssueAccessToken(claims)
	require.NoError(t, err)

	*f.now = f.now.Add(time.Hour)

	resp := f.request(t, token, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGateRenewalFromRefreshToken(t *testing.T) {
	f := newGateFixture(t)

	claims := &auth.Claims{SubjectID: "u1", Email: "u1@example.com", Role: domain.RoleUser}
	accessToken, accessExp, err := f.tokens.IssueAccessToken(claims)
	require.NoError(t, err)
	refreshToken, _, err := f.tokens.tm.Sign("u1", "u1@example.com", domain.RoleUser, 720*time.Hour)
	require.NoError(t, err)

	*f.now = f.now.Add(time.Hour)

	resp := f.request(t, accessToken, refreshToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	renewed := resp.Header.Get("Authorization")
	require.True(t, strings.HasPrefix(renewed, "Bearer "))

	outcome := f.tokens.Verify(strings.TrimPrefix(renewed, "Bearer "))
	require.Equal(t, auth.StatusValid, outcome.Status)
	assert.Equal(t, "u1", outcome.Claims.SubjectID)
	assert.Equal(t, "u1@example.com", outcome.Claims.Email)
	assert.True(t, outcome.Claims.ExpiresAt.Time.After(accessExp))
}

func TestGateExpiredRefreshToken(t *testing.T) {
	f := newGateFixture(t)

	claims := &auth.Claims{SubjectID: "u1", Email: "u1@example.com", Role: domain.RoleUser}
	accessToken, _, err := f.tokens.IssueAccessToken(claims)
	require.NoError(t, err)
	refreshToken, _, err := f.tokens.tm.Sign("u1", "u1@example.com", domain.RoleUser, 30*time.Minute)
	require.NoError(t, err)

	// Both tokens past their expiry: no third tier, the request dies.
	*f.now = f.now.Add(time.Hour)

	resp := f.request(t, accessToken, refreshToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateInvalidRefreshToken(t *testing.T) {
	f := newGateFixture(t)

	claims := &auth.Claims{SubjectID: "u1", Email: "u1@example.com", Role: domain.RoleUser}
	accessToken, _, err := f.tokens.IssueAccessToken(claims)
	require.NoError(t, err)

	*f.now = f.now.Add(time.Hour)

	resp := f.request(t, accessToken, "bogus")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
