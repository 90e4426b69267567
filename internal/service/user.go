package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"dispatch/internal/auth"
	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// UserService handles registration, login and admin user management.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// RegisterUserRequest contains the parameters for registering a user.
type RegisterUserRequest struct {
	Name     string
	Phone    string
	Password string
	IsAdmin  bool
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies phone and password and issues a bearer token carrying the
// caller's identity and admin flag.
func (s *UserService) Login(ctx context.Context, phone, password string) (string, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user.ID, user.Phone, user.IsAdmin)
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateUserRequest contains the fields an admin may change on a user.
type UpdateUserRequest struct {
	Name    string
	Phone   string
	IsAdmin bool
}

// Update rewrites a user's name, phone and admin flag.
func (s *UserService) Update(ctx context.Context, userID int64, req UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.IsAdmin = req.IsAdmin

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return user, nil
}
