package postgres

import (
	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/feedback"
	"gorm.io/gorm"
)

// FeedbackRepository implements the feedback.Repository interface using GORM
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) feedback.Repository {
	return &FeedbackRepository{db: db}
}

// Create saves a new feedback entry to the database
func (r *FeedbackRepository) Create(f *feedback.Feedback) error {
	return r.db.Create(f).Error
}

// GetByID retrieves a feedback entry by its ID
func (r *FeedbackRepository) GetByID(id string) (*feedback.Feedback, error) {
	var f feedback.Feedback
	err := r.db.Where("id = ?", id).First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrFeedbackNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetFiltered retrieves feedback entries matching the filters with pagination
func (r *FeedbackRepository) GetFiltered(filters feedback.Filters, limit, offset int) ([]*feedback.Feedback, error) {
	q := r.db.Model(&feedback.Feedback{})

	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Rating != 0 {
		q = q.Where("rating = ?", filters.Rating)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}

	var entries []*feedback.Feedback
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// Update applies a partial field update and returns the refreshed record
func (r *FeedbackRepository) Update(id string, fields map[string]interface{}) (*feedback.Feedback, error) {
	res := r.db.Model(&feedback.Feedback{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrFeedbackNotFound
	}
	return r.GetByID(id)
}

// Delete removes a feedback entry
func (r *FeedbackRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&feedback.Feedback{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrFeedbackNotFound
	}
	return nil
}

// Statistics aggregates totals, average rating, category counts and the
// rating distribution, optionally scoped to one user's entries
func (r *FeedbackRepository) Statistics(scopeUserID *int64) (*feedback.Statistics, error) {
	scoped := func() *gorm.DB {
		q := r.db.Model(&feedback.Feedback{})
		if scopeUserID != nil {
			q = q.Where("user_id = ?", *scopeUserID)
		}
		return q
	}

	stats := &feedback.Statistics{
		RatingDistribution: make(map[int]int64),
	}

	if err := scoped().Count(&stats.TotalFeedback).Error; err != nil {
		return nil, err
	}

	if stats.TotalFeedback > 0 {
		if err := scoped().
			Select("AVG(rating)").
			Scan(&stats.AverageRating).Error; err != nil {
			return nil, err
		}
	}

	if err := scoped().
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&stats.ByCategory).Error; err != nil {
		return nil, err
	}

	var ratingRows []struct {
		Rating int
		Count  int64
	}
	if err := scoped().
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&ratingRows).Error; err != nil {
		return nil, err
	}
	for _, row := range ratingRows {
		stats.RatingDistribution[row.Rating] = row.Count
	}

	return stats, nil
}
