package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taxigo/internal/models"
	"taxigo/internal/store"
	"taxigo/internal/utils"
	"taxigo/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies the opaque identity tokens. Users are
// created at signup and immutable afterwards.
type AuthService interface {
	Signup(ctx context.Context, request *SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

type authService struct {
	store      store.Store
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	logger     *logger.Logger
}

func NewAuthService(store store.Store, jwtSecret string, tokenTTL time.Duration, bcryptCost int, logger *logger.Logger) AuthService {
	return &authService{
		store:      store,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *authService) Signup(ctx context.Context, request *SignupRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      request.Name,
		Email:     strings.ToLower(strings.TrimSpace(request.Email)),
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	err = s.store.Update(ctx, func(snap *store.Snapshot) error {
		for _, u := range snap.Users {
			if u.Email == user.Email {
				return models.ErrDuplicateEmail
			}
		}
		snap.Users = append(snap.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User registered")

	return &AuthResponse{
		Token: token,
		User:  user.Info(),
	}, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	var user *models.User
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Users {
			if snap.Users[i].Email == email {
				u := snap.Users[i]
				user = &u
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.logger.WithField("email", email).Warn("Login attempt with unknown email")
		return nil, models.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		s.logger.WithUserID(user.ID).Warn("Login attempt with wrong password")
		return nil, models.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User logged in")

	return &AuthResponse{
		Token: token,
		User:  user.Info(),
	}, nil
}
