package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/service"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

const refreshCookieName = "refresh-token"

// AuthHandler exposes login, refresh and onboarding endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	production bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, production bool) *AuthHandler {
	return &AuthHandler{auth: authService, production: production}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpires)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: pair.AccessToken, ExpiresAt: pair.AccessExpires},
		},
	})
}

// Refresh handles POST /api/auth/refresh. A missing cookie is 401; a cookie
// that fails verification is 403.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	cookie := c.Cookies(refreshCookieName)
	if cookie == "" {
		return apperrors.NewUnauthorized("refresh token missing")
	}

	token, exp, err := h.auth.Refresh(c.UserContext(), cookie)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Logout handles POST /api/auth/logout by expiring the refresh cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.auth.Logout(c.UserContext(), c.Cookies(refreshCookieName))
	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Onboard handles POST /api/auth/onboarding, creating a PENDING account.
func (h *AuthHandler) Onboard(c *fiber.Ctx) error {
	var req dto.OnboardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.auth.Onboard(c.UserContext(), service.OnboardInput{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		SBU:      req.SBU,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// CompleteRegistration handles POST /api/auth/complete-registration.
func (h *AuthHandler) CompleteRegistration(c *fiber.Ctx) error {
	var req dto.CompleteRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, pair, err := h.auth.CompleteRegistration(c.UserContext(), req.Token, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpires)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: pair.AccessToken, ExpiresAt: pair.AccessExpires},
		},
	})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/api/auth",
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/api/auth",
	})
}
