package services

import (
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/utils"
	"context"
	"errors"
	"fmt"
)

type AuthService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Signup validates the payload, hashes the password and stores the new
// credential. A duplicate userId or email surfaces as
// repositories.ErrDuplicate.
func (s *AuthService) Signup(ctx context.Context, req utils.SignupRequest) error {
	if err := utils.ValidateSignup(req); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	return s.userRepo.CreateUser(ctx, &user)
}

// Login verifies the credential and returns the stored profile. An unknown
// user and a wrong password both come back as ErrInvalidCredentials so the
// response cannot leak which case occurred.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*models.User, error) {
	if userID == "" || password == "" {
		return nil, &ValidationError{Message: "User ID and password are required."}
	}

	user, err := s.userRepo.GetUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
