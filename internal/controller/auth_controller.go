package controller

import (
	"errors"

	"quest_nos_backend/internal/service"
	"quest_nos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Admin login
// @Description Authenticates an administrator and issues a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, admin, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, "Credenciais inválidas")
		case errors.Is(err, util.ErrInactiveUser):
			util.Error(ctx, 403, "Usuário desativado")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.FullName,
			"email": admin.Email,
			"role":  admin.Role,
		},
	})
}

// Me godoc
// @Summary Current admin
// @Description Returns the authenticated administrator's claims
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetAdminFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, gin.H{
		"id":    claims.AdminID,
		"email": claims.Email,
		"role":  claims.Role,
	})
}
