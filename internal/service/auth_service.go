package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/product-store/internal/auth"
	"github.com/spec-kit/product-store/internal/config"
	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/repository"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

// TokenPair bundles the credentials handed out at login. The access token
// travels in the response body, the refresh token in an HTTP-only cookie.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AuthService coordinates registration, login and the token lifecycle.
// It is the single source of truth for token verification; no other
// component re-implements expiry logic.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
}

// NewAuthService builds the service. A nil clock defaults to wall time.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, clock auth.Clock) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, clock),
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		bcryptCost: cfg.BcryptCost,
	}
}

// IssueAccessToken mints a short-lived token for the given identity.
func (s *AuthService) IssueAccessToken(claims *auth.Claims) (string, time.Time, error) {
	return s.tokenMgr.Sign(claims.SubjectID, claims.Email, claims.Role, s.accessTTL)
}

// IssueRefreshToken mints a long-lived token for the given identity.
func (s *AuthService) IssueRefreshToken(claims *auth.Claims) (string, time.Time, error) {
	return s.tokenMgr.Sign(claims.SubjectID, claims.Email, claims.Role, s.refreshTTL)
}

// Verify delegates to the token manager. Expired is a normal outcome,
// not an error.
func (s *AuthService) Verify(token string) auth.Outcome {
	return s.tokenMgr.Verify(token)
}

// Register creates a new account with the user role.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	return s.createAccount(ctx, firstName, lastName, email, password, domain.RoleUser)
}

// CreateAdmin creates a new account with the admin role.
func (s *AuthService) CreateAdmin(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	return s.createAccount(ctx, firstName, lastName, email, password, domain.RoleAdmin)
}

func (s *AuthService) createAccount(ctx context.Context, firstName, lastName, email, password string, role domain.UserRole) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewBadRequest("user already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates an account and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	claims := &auth.Claims{SubjectID: user.ID, Email: user.Email, Role: user.Role}

	accessToken, accessExp, err := s.IssueAccessToken(claims)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.IssueRefreshToken(claims)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}
