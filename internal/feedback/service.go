package feedback

import (
	"log/slog"

	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/auth"
	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
	"github.com/google/uuid"
)

// Repository defines the data access methods for feedback entries.
type Repository interface {
	Create(f *Feedback) error
	GetByID(id string) (*Feedback, error)
	GetFiltered(filters Filters, limit, offset int) ([]*Feedback, error)
	Update(id string, fields map[string]interface{}) (*Feedback, error)
	Delete(id string) error
	Statistics(scopeUserID *int64) (*Statistics, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create records a feedback entry, denormalizing the actor's display name so
// listings stay self-contained.
func (s *Service) Create(actor *coreuser.User, dto CreateFeedbackDTO) (*Feedback, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("feedback validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	f := &Feedback{
		ID:       uuid.NewString(),
		UserID:   actor.ID,
		UserName: actor.Name,
		Message:  dto.Message,
		Rating:   dto.Rating,
		Category: dto.Category,
	}

	if err := s.repo.Create(f); err != nil {
		s.logger.Error("failed to create feedback", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("feedback created", "feedback_id", f.ID, "user_id", actor.ID, "rating", f.Rating)
	return f, nil
}

// List returns feedback entries matching the filters. Non-privileged actors
// only ever see their own rows; staff counts as non-privileged here.
func (s *Service) List(actor *coreuser.User, filters Filters, limit, offset int) ([]*Feedback, error) {
	if !auth.CanModerateFeedback(actor.Role) {
		own := actor.ID
		filters.UserID = &own
	}
	return s.repo.GetFiltered(filters, limit, offset)
}

// GetByID returns one entry, visible to its owner or a moderator.
func (s *Service) GetByID(actor *coreuser.User, id string) (*Feedback, error) {
	f, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrFeedbackNotFound
	}

	if !auth.CanAccessFeedback(actor.Role, actor.ID, f.UserID) {
		s.logger.Warn("feedback read denied", "feedback_id", id, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	return f, nil
}

// Update applies a partial update under the owner-or-moderator policy.
func (s *Service) Update(actor *coreuser.User, id string, dto UpdateFeedbackDTO) (*Feedback, error) {
	f, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrFeedbackNotFound
	}

	if !auth.CanAccessFeedback(actor.Role, actor.ID, f.UserID) {
		s.logger.Warn("feedback update denied", "feedback_id", id, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := dto.Fields()
	if len(fields) == 0 {
		return f, nil
	}

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		s.logger.Error("failed to update feedback", "error", err, "feedback_id", id)
		return nil, err
	}

	return updated, nil
}

// Delete removes an entry under the owner-or-moderator policy.
func (s *Service) Delete(actor *coreuser.User, id string) error {
	f, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrFeedbackNotFound
	}

	if !auth.CanAccessFeedback(actor.Role, actor.ID, f.UserID) {
		s.logger.Warn("feedback delete denied", "feedback_id", id, "user_id", actor.ID, "role", actor.Role)
		return internal.ErrAccessDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete feedback", "error", err, "feedback_id", id)
		return err
	}

	s.logger.Info("feedback deleted", "feedback_id", id, "user_id", actor.ID)
	return nil
}

// GetStatistics aggregates feedback counts. Admin sees every record; all
// other roles are scoped to their own entries.
func (s *Service) GetStatistics(actor *coreuser.User) (*Statistics, error) {
	var scope *int64
	if !auth.SeesAllStatistics(actor.Role) {
		own := actor.ID
		scope = &own
	}

	stats, err := s.repo.Statistics(scope)
	if err != nil {
		s.logger.Error("failed to aggregate feedback statistics", "error", err, "user_id", actor.ID)
		return nil, err
	}
	return stats, nil
}
