package handler

import (
	"net/http"

	"clothing-mall/internal/model"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/jwt"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Role         string `json:"role" binding:"required,oneof=customer vendor"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name"`
	TaxID        string `json:"tax_id"`
}

// Register creates a customer or vendor account. Admin accounts are only
// seeded out of band.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user *model.User
	var err error
	switch req.Role {
	case model.RoleVendor:
		user, err = h.auth.RegisterVendor(req.Name, req.Email, req.Password, req.BusinessName, req.TaxID)
	default:
		user, err = h.auth.RegisterCustomer(req.Name, req.Email, req.Password)
	}
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"role":     user.Role,
		"approved": user.Approved,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and then applies the account gates before issuing a
// token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.auth.Login(user); err != nil {
		renderError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.ChangePassword(principalID(c), req.OldPassword, req.NewPassword); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}
