package handlers

import (
	"net/http"

	"github.com/muss3ab/tsh/internal/dto"
	"github.com/muss3ab/tsh/internal/middleware"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a customer account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request"
// @Failure 409 {object} dto.ConflictErrorResponse "Email already registered"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid registration request", zap.Error(err))
		respondBindError(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:      dto.ToUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Login godoc
// @Summary Log in
// @Description Exchanges credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.RateLimitedErrorResponse "Too many attempts"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:      dto.ToUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the current access token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	v, ok := c.Get(middleware.CtxClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
		return
	}
	claims := v.(*service.Claims)

	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// CurrentUser godoc
// @Summary Current user profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	u, err := h.auth.CurrentUser(middleware.ServiceContext(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(u))
}
