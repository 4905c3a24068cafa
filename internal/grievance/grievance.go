package grievance

import (
	"time"
)

// Grievance statuses. The lifecycle is Open -> In Progress -> Resolved/Closed
// but the transition graph is not enforced: any authorized update may set any
// valid status. Setting Resolved or Closed notifies the submitter.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

type Grievance struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Title            string    `json:"title" gorm:"not null"`
	Description      string    `json:"description" gorm:"not null"`
	Category         string    `json:"category" gorm:"not null"`
	Priority         string    `json:"priority" gorm:"not null"`
	Status           string    `json:"status" gorm:"not null;default:Open"`
	SubmittedBy      int64     `json:"submitted_by" gorm:"column:submitted_by;not null"`
	AssignedTo       *int64    `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	AISummary        *string   `json:"ai_summary,omitempty" gorm:"column:ai_summary"`
	AIRecommendation *string   `json:"ai_recommendation,omitempty" gorm:"column:ai_recommendation"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Grievance) TableName() string {
	return "grievances"
}

type Comment struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	GrievanceID int64     `json:"grievance_id" gorm:"column:grievance_id;not null"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null"`
	Content     string    `json:"content" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

type Attachment struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	GrievanceID    int64     `json:"grievance_id" gorm:"column:grievance_id;not null"`
	Filename       string    `json:"filename" gorm:"not null"`
	StoredFilename string    `json:"stored_filename" gorm:"column:stored_filename;not null"`
	UploadedBy     int64     `json:"uploaded_by" gorm:"column:uploaded_by;not null"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// Categories is the closed enumeration of grievance categories. Creation and
// update reject values outside this list.
var Categories = []string{
	"Public Infrastructure & Utilities",
	"Government Services & Administration",
	"Consumer Rights & Product Issues",
	"Workplace & Employment Issues",
	"Education & Student Concerns",
	"Healthcare & Medical Services",
	"Law Enforcement & Justice",
	"Environmental & Safety Issues",
	"Housing & Real Estate",
	"Transportation & Public Safety",
	"Financial & Banking Issues",
	"Other",
}

// Priorities is the closed enumeration of priority levels.
var Priorities = []string{
	"Low - Minor issue, no immediate action required",
	"Medium - Requires attention within a week",
	"High - Needs immediate investigation",
	"Critical - Urgent action required",
}

var Statuses = []string{
	StatusOpen,
	StatusInProgress,
	StatusResolved,
	StatusClosed,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidPriority(priority string) bool {
	for _, p := range Priorities {
		if p == priority {
			return true
		}
	}
	return false
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Filters narrows the moderation listing. Empty fields are ignored.
type Filters struct {
	Status      string
	Category    string
	Priority    string
	SubmittedBy *int64
	AssignedTo  *int64
}

type CountByField struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type Statistics struct {
	TotalGrievances  int64          `json:"total_grievances"`
	ByStatus         []CountByField `json:"by_status"`
	ByCategory       []CountByField `json:"by_category"`
	ByPriority       []CountByField `json:"by_priority"`
	RecentGrievances []*Grievance   `json:"recent_grievances"`
}
