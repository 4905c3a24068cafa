package feedback

import (
	"time"
)

// Categories is the closed enumeration of feedback categories.
var Categories = []string{
	"usability",
	"performance",
	"features",
	"design",
	"other",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// Feedback is a product feedback entry. UserName is denormalized at creation
// time so listings never join against the users table.
type Feedback struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null"`
	UserName  string    `json:"user_name" gorm:"column:user_name;not null"`
	Message   string    `json:"message" gorm:"not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Category  string    `json:"category" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// Filters narrows feedback listings. Zero values are ignored.
type Filters struct {
	Category string
	Rating   int
	UserID   *int64
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Statistics struct {
	TotalFeedback      int64           `json:"total_feedback"`
	AverageRating      float64         `json:"average_rating"`
	ByCategory         []CategoryCount `json:"by_category"`
	RatingDistribution map[int]int64   `json:"rating_distribution"`
}
