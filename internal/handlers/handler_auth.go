package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

const maxAvatarBytes = 5 << 20

// authHandler handles registration, login and account self-service.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	images       portssvc.ImageStore
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:  services.User,
		tokenService: services.Token,
		images:       services.Images,
	}
}

// registerAuthRoutes sets up the /auth route group. Login and forgot-password
// go through the shared IP rate limiter.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, loginLimiter gin.HandlerFunc) {
	h := newAuthHandler(services)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginLimiter, h.login)
		auth.POST("/forgot-password", loginLimiter, h.forgotPassword)
		auth.POST("/reset-password", h.resetPassword)

		authed := auth.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("/me", h.me)
			authed.PUT("/profile", h.updateProfile)
			authed.POST("/avatar", h.uploadAvatar)
			authed.POST("/change-password", h.changePassword)
		}
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a user account and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email or phone number already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register user")
		return
	}

	token, err := h.tokenService.GenerateAccessToken(user.UserID)
	if err != nil {
		logger.Error("Failed to sign token for new user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// login godoc
// @Summary User login
// @Description Authenticates by email or phone number plus password and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to authenticate")
		return
	}

	token, err := h.tokenService.GenerateAccessToken(user.UserID)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// forgotPassword godoc
// @Summary Request a password reset code
// @Description Emails a one-time 6-digit reset code to a registered address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Registered email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Email not registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.ForgotPassword(c.Request.Context(), req.Identifier); err != nil {
		respondError(c, logger, err, "Failed to issue reset code")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "A reset code has been sent to your email"})
}

// resetPassword godoc
// @Summary Reset password with a mailed code
// @Description Consumes a valid reset code and sets the new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Email, code and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid or expired reset code"
// @Failure 500 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Identifier, req.Code, req.NewPassword); err != nil {
		respondError(c, logger, err, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}

// changePassword godoc
// @Summary Change password
// @Description Rotates the password of the authenticated user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, logger, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed"})
}

// me godoc
// @Summary Get current user
// @Description Returns the profile of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateProfile godoc
// @Summary Update profile
// @Description Patches full name, email or phone number of the authenticated user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Identifier already taken"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/profile [put]
func (h *authHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// uploadAvatar godoc
// @Summary Upload avatar
// @Description Accepts a multipart image, resizes it and stores it as the user's avatar.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image (JPEG, PNG, WebP or GIF)"
// @Success 200 {object} dto.AvatarUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/avatar [post]
func (h *authHandler) uploadAvatar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Avatar file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read avatar file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read avatar file"})
		return
	}

	avatarURL, err := h.images.SaveAvatar(c.Request.Context(), userID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, logger, err, "Failed to store avatar")
		return
	}

	if _, err := h.userService.UpdateAvatar(c.Request.Context(), userID, avatarURL); err != nil {
		respondError(c, logger, err, "Failed to update avatar")
		return
	}

	c.JSON(http.StatusOK, dto.AvatarUploadResponse{URL: avatarURL})
}
