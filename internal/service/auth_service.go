package service

import (
	"fmt"

	"quest_nos_backend/internal/config"
	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/internal/util"
	"quest_nos_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin logins. Account lookup goes through the
// verify_admin_login database routine; the bcrypt comparison stays here and
// the service issues the session token.
type AuthService struct {
	AdminRepo *repository.AdminUserRepository
	Cfg       *config.Config
}

func NewAuthService(adminRepo *repository.AdminUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{AdminRepo: adminRepo, Cfg: cfg}
}

func (s *AuthService) Login(email, password string) (string, *model.AdminUser, error) {
	admins, err := s.AdminRepo.VerifyLogin(email)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao verificar credenciais: %w", err)
	}
	if len(admins) == 0 {
		return "", nil, util.ErrInvalidCredentials
	}

	admin := admins[0]
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return "", nil, util.ErrInactiveUser
	}

	token, err := util.GenerateJWT(&admin, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	// Best effort, off the request path.
	go func(id string) {
		if err := s.AdminRepo.UpdateLastLogin(id); err != nil {
			logger.Log.Warn("failed to update last login", zap.String("adminId", id), zap.Error(err))
		}
	}(admin.ID)

	return token, &admin, nil
}
