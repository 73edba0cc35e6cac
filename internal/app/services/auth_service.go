package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/repositories"
	"github.com/derin/notehub/internal/pkg/apperrors"
	"github.com/derin/notehub/internal/pkg/auth"
)

// AuthService implements admin authentication
type AuthService struct {
	adminRepo  *repositories.AdminRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo *repositories.AdminRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login verifies admin credentials and issues a session token. A missing
// account and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if admin == nil || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, err
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		log.Warn().Err(err).Str("username", admin.Username).Msg("Failed to stamp last login")
	}

	log.Info().Str("username", admin.Username).Msg("Admin logged in")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Username:  admin.Username,
	}, nil
}
