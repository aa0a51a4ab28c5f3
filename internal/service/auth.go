package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/auth"
)

func (s *Service) Register(ctx context.Context, req model.UserCreateRequest) (model.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	return s.repo.CreateUser(ctx, req, hash)
}

// Login verifies credentials and issues an HS256 access token carrying
// the borrower identity.
func (s *Service) Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		return model.AuthResponse{}, errs.ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.tokenTTL)
	claims := &auth.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	claims.Profile.UserID = user.ID
	claims.Profile.Username = user.Username
	claims.Profile.Role = user.Role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JWTKey)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}

	return model.AuthResponse{
		AccessToken: tokenString,
		ExpiresIn:   int(expirationTime.Unix()),
	}, nil
}

func (s *Service) Profile(ctx context.Context, userID int) (model.UserProfile, error) {
	return s.repo.Profile(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]model.UserStats, error) {
	return s.repo.ListUsers(ctx)
}
