package user

import (
	"errors"
	"net/http"
	"time"

	"turfbook/internal/api"
	"turfbook/internal/auth"
	"turfbook/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service      Service
	sessionTTL   time.Duration
	cookieSecure bool
}

func NewHandler(service Service, sessionTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		service:      service,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// Register godoc
// @Summary      Register new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Credentials"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	_, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			api.Fail(c, http.StatusBadRequest, "User already exists")
			return
		}
		logger.WithError(err).Error("register failed")
		api.Fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	api.OK(c, http.StatusOK, "Registration successful")
}

// Login godoc
// @Summary      Login
// @Description  Authenticates by email and password and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			api.Fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.WithError(err).Error("login failed")
		api.Fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	auth.SetSessionCookie(c, token, h.sessionTTL, h.cookieSecure)
	c.JSON(http.StatusOK, LoginResponse{Success: true, User: user.Profile()})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Router       /api/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.cookieSecure)
	api.OK(c, http.StatusOK, "Logged out")
}

// Me godoc
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  MeResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MeResponse{User: nil})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, MeResponse{User: nil})
		return
	}
	if err != nil {
		logger.WithError(err).Error("load session user failed", "user_id", userID)
		api.Fail(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	profile := user.Profile()
	c.JSON(http.StatusOK, MeResponse{User: &profile})
}
