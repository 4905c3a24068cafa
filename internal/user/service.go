package user

import (
	"errors"
	"log/slog"

	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetByID(id int64) (*coreuser.User, error)
	GetByEmail(email string) (*coreuser.User, error)
	GetByDepartment(department string) ([]*coreuser.User, error)
	UpdateProfile(id int64, fields map[string]interface{}) (*coreuser.User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(id int64) (*coreuser.User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (*coreuser.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *Service) GetByDepartment(department string) ([]*coreuser.User, error) {
	users, err := s.repo.GetByDepartment(department)
	if err != nil {
		s.logger.Error("failed to list department users", "error", err, "department", department)
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateProfile(id int64, dto UpdateProfileDTO) (*coreuser.User, error) {
	fields := dto.Fields()
	if len(fields) == 0 {
		return s.repo.GetByID(id)
	}

	u, err := s.repo.UpdateProfile(id, fields)
	if err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", id)
	return u, nil
}
