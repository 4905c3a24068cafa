package auth

import (
	"log/slog"
	"strings"
	"time"

	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(u *coreuser.User) error
	GetByEmail(email string) (*coreuser.User, error)
	GetByID(id int64) (*coreuser.User, error)
	UpdatePassword(userID int64, passwordHash string) error
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Register creates the account and immediately issues a session token so the
// client is logged in after signup.
func (s *Service) Register(dto RegisterDTO) (*coreuser.User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, "", err
	}

	now := time.Now()
	u := &coreuser.User{
		Name:         dto.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         NormalizeRole(dto.Role),
		Department:   dto.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, "", err
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, token, nil
}

// Authenticate validates credentials and returns the user plus a fresh token.
func (s *Service) Authenticate(dto LoginDTO) (*coreuser.User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// ValidateToken verifies the signature and expiry and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID resolves a verified token subject to the current user record.
func (s *Service) GetUserByID(id int64) (*coreuser.User, error) {
	return s.userRepo.GetByID(id)
}

// ResetPassword replaces a user's password keyed only by user id, mirroring
// the portal's forgot-password flow. There is no possession-of-email proof
// here, so the route must stay behind whatever perimeter the deployment has.
func (s *Service) ResetPassword(userID int64, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return ErrUserNotFound
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(userID, hash); err != nil {
		s.logger.Error("failed to update password", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("password reset", "user_id", userID)
	return nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
