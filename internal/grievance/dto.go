package grievance

import (
	"fmt"
	"time"

	"github.com/frahmantamala/grievance-management/internal"
)

// CreateGrievanceDTO represents the request payload for filing a grievance.
type CreateGrievanceDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	UseAI       bool   `json:"useAI"`
}

func (dto CreateGrievanceDTO) Validate() error {
	if dto.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if dto.Description == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	if dto.Category == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeValidationFailed)
	}
	if dto.Priority == "" {
		return internal.NewValidationError("priority is required", internal.ErrCodeValidationFailed)
	}
	if !ValidCategory(dto.Category) {
		return internal.NewValidationError(fmt.Sprintf("unknown category %q", dto.Category), internal.ErrCodeInvalidCategory)
	}
	if !ValidPriority(dto.Priority) {
		return internal.NewValidationError(fmt.Sprintf("unknown priority %q", dto.Priority), internal.ErrCodeInvalidPriority)
	}
	return nil
}

// UpdateGrievanceDTO carries a partial update. Nil fields are untouched.
type UpdateGrievanceDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	AssignedTo  *int64  `json:"assigned_to,omitempty"`
}

func (dto UpdateGrievanceDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Description != nil && *dto.Description == "" {
		return internal.NewValidationError("description cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Category != nil && !ValidCategory(*dto.Category) {
		return internal.NewValidationError(fmt.Sprintf("unknown category %q", *dto.Category), internal.ErrCodeInvalidCategory)
	}
	if dto.Priority != nil && !ValidPriority(*dto.Priority) {
		return internal.NewValidationError(fmt.Sprintf("unknown priority %q", *dto.Priority), internal.ErrCodeInvalidPriority)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationError(fmt.Sprintf("unknown status %q", *dto.Status), internal.ErrCodeInvalidStatus)
	}
	return nil
}

func (dto UpdateGrievanceDTO) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.Title != nil {
		fields["title"] = *dto.Title
	}
	if dto.Description != nil {
		fields["description"] = *dto.Description
	}
	if dto.Category != nil {
		fields["category"] = *dto.Category
	}
	if dto.Priority != nil {
		fields["priority"] = *dto.Priority
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	if dto.AssignedTo != nil {
		fields["assigned_to"] = *dto.AssignedTo
	}
	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
	}
	return fields
}

// CreateCommentDTO is the payload for appending a comment to a grievance.
type CreateCommentDTO struct {
	Content string `json:"content"`
}

func (dto CreateCommentDTO) Validate() error {
	if dto.Content == "" {
		return internal.NewValidationError("comment content is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
