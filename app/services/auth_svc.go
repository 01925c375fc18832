package services

import (
	"context"
	"fmt"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/utils/token"
)

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	tokens   *token.Manager
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, tokens *token.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: hashed,
		Role:     models.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !helpers.CheckPassword(user.Password, password) {
		return nil, "", "", ErrInvalidLogin
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return user, accessToken, refreshToken, nil
}

// Refresh rotates the refresh token and mints a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	userID, newRefresh, err := s.tokens.RotateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return "", "", token.ErrInvalidToken
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, newRefresh, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, phone, profileImage string) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if profileImage != "" {
		user.ProfileImage = profileImage
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
