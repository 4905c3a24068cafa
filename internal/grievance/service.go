package grievance

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/auth"
	"github.com/frahmantamala/grievance-management/internal/core/events"
	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
)

// Repository defines the data access methods for grievances and their
// comments and attachments.
type Repository interface {
	Create(g *Grievance) error
	GetByID(id int64) (*Grievance, error)
	GetByUserID(userID int64, limit, offset int) ([]*Grievance, error)
	GetAll(limit, offset int) ([]*Grievance, error)
	GetFiltered(filters Filters, limit, offset int) ([]*Grievance, error)
	Update(id int64, fields map[string]interface{}) (*Grievance, error)
	Statistics(scopeUserID *int64) (*Statistics, error)

	CreateComment(c *Comment) error
	CommentsByGrievance(grievanceID int64) ([]*Comment, error)
	CreateAttachment(a *Attachment) error
	AttachmentsByGrievance(grievanceID int64) ([]*Attachment, error)
}

// UserDirectory resolves user records for submitter/assignee enrichment and
// notification addressing.
type UserDirectory interface {
	GetByID(id int64) (*coreuser.User, error)
}

// InsightsGenerator produces an AI summary and recommendation for a newly
// filed grievance. Failures are non-fatal to creation.
type InsightsGenerator interface {
	Insights(ctx context.Context, title, description, category string) (summary, recommendation string, err error)
}

// EventPublisher receives domain events; the notification dispatcher
// subscribes to terminal status changes.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     Repository
	users    UserDirectory
	insights InsightsGenerator
	bus      EventPublisher
	logger   *slog.Logger
}

func NewService(repo Repository, users UserDirectory, insights InsightsGenerator, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		insights: insights,
		bus:      bus,
		logger:   logger,
	}
}

// Create files a grievance on behalf of the actor. When the payload asks for
// AI insights they are attached best-effort; an insight failure never fails
// the filing itself.
func (s *Service) Create(ctx context.Context, actor *coreuser.User, dto CreateGrievanceDTO) (*Grievance, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("grievance validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	g := &Grievance{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		Priority:    dto.Priority,
		Status:      StatusOpen,
		SubmittedBy: actor.ID,
	}

	if dto.UseAI && s.insights != nil {
		summary, recommendation, err := s.insights.Insights(ctx, dto.Title, dto.Description, dto.Category)
		if err != nil {
			s.logger.Warn("ai insights unavailable", "error", err, "user_id", actor.ID)
		} else {
			g.AISummary = &summary
			g.AIRecommendation = &recommendation
		}
	}

	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to create grievance", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("grievance created",
		"grievance_id", g.ID,
		"user_id", actor.ID,
		"category", g.Category,
		"priority", g.Priority)

	return g, nil
}

// Detail is a grievance enriched with its comments, attachments and the
// involved user records.
type Detail struct {
	Grievance   *Grievance     `json:"grievance"`
	Comments    []*Comment     `json:"comments"`
	Attachments []*Attachment  `json:"attachments"`
	Submitter   *coreuser.User `json:"submitter,omitempty"`
	Assignee    *coreuser.User `json:"assignee,omitempty"`
}

// GetDetail returns a grievance with its thread, enforcing read visibility:
// the submitter always, privileged roles regardless of ownership.
func (s *Service) GetDetail(actor *coreuser.User, id int64) (*Detail, error) {
	g, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrGrievanceNotFound
	}

	if !auth.CanReadGrievance(actor.Role, actor.ID, g.SubmittedBy) {
		s.logger.Warn("grievance read denied", "grievance_id", id, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	comments, err := s.repo.CommentsByGrievance(id)
	if err != nil {
		return nil, err
	}
	attachments, err := s.repo.AttachmentsByGrievance(id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Grievance:   g,
		Comments:    comments,
		Attachments: attachments,
	}

	if submitter, err := s.users.GetByID(g.SubmittedBy); err == nil {
		detail.Submitter = submitter
	}
	if g.AssignedTo != nil {
		if assignee, err := s.users.GetByID(*g.AssignedTo); err == nil {
			detail.Assignee = assignee
		}
	}

	return detail, nil
}

// List returns grievances visible to the actor: privileged roles see
// everything, everyone else only their own submissions.
func (s *Service) List(actor *coreuser.User, limit, offset int) ([]*Grievance, error) {
	if auth.IsPrivileged(actor.Role) {
		return s.repo.GetAll(limit, offset)
	}
	return s.repo.GetByUserID(actor.ID, limit, offset)
}

// ListFiltered applies the moderation filters. Non-privileged actors are
// always pinned to their own submissions regardless of the filter payload.
func (s *Service) ListFiltered(actor *coreuser.User, filters Filters, limit, offset int) ([]*Grievance, error) {
	if !auth.IsPrivileged(actor.Role) {
		own := actor.ID
		filters.SubmittedBy = &own
	}
	return s.repo.GetFiltered(filters, limit, offset)
}

// Update applies a partial update under the role policy and dispatches a
// notification when the incoming payload sets a terminal status. The event
// fires only after the write persisted, and a notification failure never
// fails the update.
func (s *Service) Update(ctx context.Context, actor *coreuser.User, id int64, dto UpdateGrievanceDTO) (*Grievance, error) {
	g, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrGrievanceNotFound
	}

	if !auth.CanUpdateGrievance(actor.Role, actor.ID, g.SubmittedBy) {
		s.logger.Warn("grievance update denied", "grievance_id", id, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := dto.Fields()
	if len(fields) == 0 {
		return g, nil
	}

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		s.logger.Error("failed to update grievance", "error", err, "grievance_id", id)
		return nil, err
	}

	// The incoming payload value decides whether to notify, not the prior
	// stored status: re-setting Resolved on an already resolved grievance
	// notifies again, matching the portal's behavior.
	if dto.Status != nil {
		switch *dto.Status {
		case StatusResolved:
			s.notifyStatusChange(ctx, updated, events.StatusKindResolved)
		case StatusClosed:
			s.notifyStatusChange(ctx, updated, events.StatusKindClosed)
		}
	}

	s.logger.Info("grievance updated", "grievance_id", id, "user_id", actor.ID)
	return updated, nil
}

func (s *Service) notifyStatusChange(ctx context.Context, g *Grievance, kind string) {
	submitter, err := s.users.GetByID(g.SubmittedBy)
	if err != nil {
		s.logger.Error("cannot resolve submitter for notification", "error", err, "grievance_id", g.ID)
		return
	}

	event := events.NewGrievanceStatusChanged(g.ID, g.Title, g.Description, submitter.Email, kind)
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Error("status notification failed", "error", err, "grievance_id", g.ID, "kind", kind)
	}
}

// AddComment appends to the grievance thread. Commenting requires the same
// visibility as reading the parent grievance.
func (s *Service) AddComment(actor *coreuser.User, grievanceID int64, dto CreateCommentDTO) (*Comment, error) {
	g, err := s.repo.GetByID(grievanceID)
	if err != nil {
		return nil, internal.ErrGrievanceNotFound
	}

	if !auth.CanReadGrievance(actor.Role, actor.ID, g.SubmittedBy) {
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Comment{
		GrievanceID: grievanceID,
		UserID:      actor.ID,
		Content:     dto.Content,
	}

	if err := s.repo.CreateComment(c); err != nil {
		s.logger.Error("failed to add comment", "error", err, "grievance_id", grievanceID)
		return nil, err
	}

	return c, nil
}

func (s *Service) Comments(actor *coreuser.User, grievanceID int64) ([]*Comment, error) {
	g, err := s.repo.GetByID(grievanceID)
	if err != nil {
		return nil, internal.ErrGrievanceNotFound
	}

	if !auth.CanReadGrievance(actor.Role, actor.ID, g.SubmittedBy) {
		return nil, internal.ErrAccessDenied
	}

	return s.repo.CommentsByGrievance(grievanceID)
}

// AddAttachment records metadata for a file already written to the upload
// store. The caller supplies both the display name and the stored name.
func (s *Service) AddAttachment(actor *coreuser.User, grievanceID int64, filename, storedFilename string) (*Attachment, error) {
	g, err := s.repo.GetByID(grievanceID)
	if err != nil {
		return nil, internal.ErrGrievanceNotFound
	}

	if !auth.CanReadGrievance(actor.Role, actor.ID, g.SubmittedBy) {
		return nil, internal.ErrAccessDenied
	}

	a := &Attachment{
		GrievanceID:    grievanceID,
		Filename:       filename,
		StoredFilename: storedFilename,
		UploadedBy:     actor.ID,
	}

	if err := s.repo.CreateAttachment(a); err != nil {
		s.logger.Error("failed to record attachment", "error", err, "grievance_id", grievanceID)
		return nil, err
	}

	return a, nil
}

func (s *Service) Attachments(actor *coreuser.User, grievanceID int64) ([]*Attachment, error) {
	g, err := s.repo.GetByID(grievanceID)
	if err != nil {
		return nil, internal.ErrGrievanceNotFound
	}

	if !auth.CanReadGrievance(actor.Role, actor.ID, g.SubmittedBy) {
		return nil, internal.ErrAccessDenied
	}

	return s.repo.AttachmentsByGrievance(grievanceID)
}

// GetStatistics aggregates grievance counts. Admin sees every record; all
// other roles are scoped to their own submissions.
func (s *Service) GetStatistics(actor *coreuser.User) (*Statistics, error) {
	var scope *int64
	if !auth.SeesAllStatistics(actor.Role) {
		own := actor.ID
		scope = &own
	}

	stats, err := s.repo.Statistics(scope)
	if err != nil {
		s.logger.Error("failed to aggregate statistics", "error", err, "user_id", actor.ID)
		return nil, err
	}
	return stats, nil
}
