package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
	"github.com/campusbites/canteen/internal/server/http/middleware"
	"github.com/campusbites/canteen/internal/usecase"
)

// AuthHandler processes registration, login and email verification.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), usecase.RegisterInput{
		Login:     req.Login,
		Password:  req.Password,
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		CollegeID: req.CollegeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// RequestOTP handles POST /api/user/otp/request.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RequestOTP(c.Request.Context(), req.Email); err != nil {
		c.Status(http.StatusTooManyRequests)
		return
	}
	c.Status(http.StatusOK)
}

// VerifyOTP handles POST /api/user/otp/verify.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Code == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.VerifyOTP(c.Request.Context(), req.Email, req.Code); err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}
	c.Status(http.StatusOK)
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Login:         user.Login,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Role:          string(user.Role),
		FullName:      user.FullName,
	}
}
