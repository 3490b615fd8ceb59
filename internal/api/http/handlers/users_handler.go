package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/product-store/internal/api/dto"
	"github.com/spec-kit/product-store/internal/auth"
	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/service"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and profile endpoints.
type UsersHandler struct {
	auth      *service.AuthService
	users     *service.UserService
	secureEnv bool
}

// NewUsersHandler constructs handler. secureEnv marks cookies Secure.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService, secureEnv bool) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService, secureEnv: secureEnv}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("first_name, last_name, email, password required", nil)
	}

	user, err := h.auth.Register(c.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// CreateAdmin handles POST /auth/admins (admin only).
func (h *UsersHandler) CreateAdmin(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("first_name, last_name, email, password required", nil)
	}

	user, err := h.auth.CreateAdmin(c.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Login handles POST /auth/login. The refresh token is delivered in an
// HTTP-only cookie; the access token in the body.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.RefreshCookieName,
		Value:    pair.RefreshToken,
		Expires:  pair.RefreshExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureEnv,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userSummary(user),
			"auth": dto.AuthResponse{AccessToken: pair.AccessToken, ExpiresAt: pair.AccessExpiresAt},
		},
	})
}

// Logout handles POST /auth/logout by expiring the refresh cookie.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.RefreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureEnv,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged out"}})
}

// GetProfile handles GET /users/me.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.users.GetUser(c.Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummary(user)})
}

// UpdateProfile handles PATCH /users/me.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateUser(c.Context(), claims.SubjectID, service.UserUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummary(user)})
}

// GetUser handles GET /users/:id (admin only).
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummary(user)})
}

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
	}
}
