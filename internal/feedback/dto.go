package feedback

import (
	"fmt"
	"time"

	"github.com/frahmantamala/grievance-management/internal"
)

// CreateFeedbackDTO is the request payload for submitting feedback.
type CreateFeedbackDTO struct {
	Message  string `json:"message"`
	Rating   int    `json:"rating"`
	Category string `json:"category"`
}

func (dto CreateFeedbackDTO) Validate() error {
	if dto.Message == "" {
		return internal.NewValidationError("message is required", internal.ErrCodeValidationFailed)
	}
	if !ValidRating(dto.Rating) {
		return internal.NewValidationError("rating must be between 1 and 5", internal.ErrCodeInvalidRating)
	}
	if dto.Category == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeValidationFailed)
	}
	if !ValidCategory(dto.Category) {
		return internal.NewValidationError(fmt.Sprintf("unknown category %q", dto.Category), internal.ErrCodeInvalidCategory)
	}
	return nil
}

// UpdateFeedbackDTO carries a partial update. Nil fields are untouched.
type UpdateFeedbackDTO struct {
	Message  *string `json:"message,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (dto UpdateFeedbackDTO) Validate() error {
	if dto.Message != nil && *dto.Message == "" {
		return internal.NewValidationError("message cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Rating != nil && !ValidRating(*dto.Rating) {
		return internal.NewValidationError("rating must be between 1 and 5", internal.ErrCodeInvalidRating)
	}
	if dto.Category != nil && !ValidCategory(*dto.Category) {
		return internal.NewValidationError(fmt.Sprintf("unknown category %q", *dto.Category), internal.ErrCodeInvalidCategory)
	}
	return nil
}

func (dto UpdateFeedbackDTO) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.Message != nil {
		fields["message"] = *dto.Message
	}
	if dto.Rating != nil {
		fields["rating"] = *dto.Rating
	}
	if dto.Category != nil {
		fields["category"] = *dto.Category
	}
	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
	}
	return fields
}
