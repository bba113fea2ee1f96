package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/service"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

type AuthHandler struct {
	authService *service.AuthService
	accessTTL   int
	refreshTTL  int
	secure      bool
}

func NewAuthHandler(cfg *config.Config, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		accessTTL:   int(cfg.JWT.AccessTTL.Seconds()),
		refreshTTL:  int(cfg.JWT.RefreshTTL.Seconds()),
		secure:      cfg.App.Environment == "production",
	}
}

// setAuthCookies attaches the two httpOnly auth cookies to the response.
func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(constants.CookieAccessToken, accessToken, h.accessTTL, "/", "", h.secure, true)
	c.SetCookie(constants.CookieRefreshToken, refreshToken, h.refreshTTL, "/", "", h.secure, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(constants.CookieAccessToken, "", -1, "/", "", h.secure, true)
	c.SetCookie(constants.CookieRefreshToken, "", -1, "/", "", h.secure, true)
}

// Register handles public account creation
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid register request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	response, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("email", req.Email).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	h.setAuthCookies(c, response.AccessToken, response.RefreshToken)
	c.JSON(http.StatusCreated, response)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", req.Email).
		Log()

	response, err := h.authService.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("email", req.Email).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	h.setAuthCookies(c, response.AccessToken, response.RefreshToken)
	c.JSON(http.StatusOK, response)
}

// Refresh rotates the refresh token. The token is read from the cookie
// first, then the request body.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Refresh")

	refreshToken, _ := c.Cookie(constants.CookieRefreshToken)
	if refreshToken == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	response, err := h.authService.Refresh(ctx, refreshToken)
	if err != nil {
		logger.WarnWithContext(ctx, "Token refresh failed").
			Err(err).
			Log()
		h.clearAuthCookies(c)
		respondDomainError(c, err)
		return
	}

	h.setAuthCookies(c, response.AccessToken, response.RefreshToken)
	c.JSON(http.StatusOK, response)
}

// Logout revokes the session and clears cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	refreshToken, _ := c.Cookie(constants.CookieRefreshToken)
	if refreshToken == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if err := h.authService.Logout(ctx, refreshToken); err != nil {
		respondDomainError(c, err)
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// ForgotPassword sends a reset link. The response is identical whether
// or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ForgotPassword")

	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	if err := h.authService.ForgotPassword(ctx, req.Email); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("If the email is registered, a reset link has been sent"))
}

// ResetPassword consumes a reset token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}
	if errs := req.FieldErrors(); len(errs) > 0 {
		respondFieldErrors(c, apperrors.ErrPasswordMismatch, errs)
		return
	}

	if err := h.authService.ResetPassword(ctx, req.Token, req.Password); err != nil {
		logger.WarnWithContext(ctx, "Password reset failed").
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password has been reset, please log in"))
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	user, err := h.authService.Me(ctx, currentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile edits the caller's own profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProfile")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.authService.UpdateProfile(ctx, currentUserID(c), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword changes the caller's password after verifying the
// current one
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChangePassword")

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}
	if errs := req.FieldErrors(); len(errs) > 0 {
		respondFieldErrors(c, apperrors.ErrPasswordMismatch, errs)
		return
	}

	if err := h.authService.ChangePassword(ctx, currentUserID(c), &req); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated"))
}

// CleanupTokens removes expired rows from both token ledgers
func (h *AuthHandler) CleanupTokens(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CleanupTokens")

	result, err := h.authService.CleanupExpiredTokens(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	logger.InfoWithContext(ctx, "Token cleanup executed").
		Int64("refresh_removed", result.RefreshTokensRemoved).
		Int64("reset_removed", result.ResetTokensRemoved).
		Log()

	c.JSON(http.StatusOK, result)
}
