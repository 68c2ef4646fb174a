package services

import (
	"context"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/auth"
	"travel-backend/internal/models"
	"travel-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Signup creates a new agent account with a hashed password
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, apperrors.Validation("name, email, and password are required")
	}

	exists, err := s.Repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         "agent",
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// Login authenticates an agent and returns a JWT token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Validation("invalid email or password")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validation("invalid email or password")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}
