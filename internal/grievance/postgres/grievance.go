package postgres

import (
	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/grievance"
	"gorm.io/gorm"
)

// GrievanceRepository implements the grievance.Repository interface using GORM
type GrievanceRepository struct {
	db *gorm.DB
}

// NewGrievanceRepository creates a new grievance repository
func NewGrievanceRepository(db *gorm.DB) grievance.Repository {
	return &GrievanceRepository{db: db}
}

// Create saves a new grievance to the database
func (r *GrievanceRepository) Create(g *grievance.Grievance) error {
	return r.db.Create(g).Error
}

// GetByID retrieves a grievance by its ID
func (r *GrievanceRepository) GetByID(id int64) (*grievance.Grievance, error) {
	var g grievance.Grievance
	err := r.db.Where("id = ?", id).First(&g).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrGrievanceNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByUserID retrieves grievances submitted by a specific user with pagination
func (r *GrievanceRepository) GetByUserID(userID int64, limit, offset int) ([]*grievance.Grievance, error) {
	var grievances []*grievance.Grievance
	err := r.db.Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&grievances).Error
	return grievances, err
}

// GetAll retrieves grievances across all users with pagination
func (r *GrievanceRepository) GetAll(limit, offset int) ([]*grievance.Grievance, error) {
	var grievances []*grievance.Grievance
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&grievances).Error
	return grievances, err
}

// GetFiltered retrieves grievances matching the given filters. Empty filter
// fields are ignored.
func (r *GrievanceRepository) GetFiltered(filters grievance.Filters, limit, offset int) ([]*grievance.Grievance, error) {
	q := r.db.Model(&grievance.Grievance{})

	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Priority != "" {
		q = q.Where("priority = ?", filters.Priority)
	}
	if filters.SubmittedBy != nil {
		q = q.Where("submitted_by = ?", *filters.SubmittedBy)
	}
	if filters.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filters.AssignedTo)
	}

	var grievances []*grievance.Grievance
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&grievances).Error
	return grievances, err
}

// Update applies a partial field update and returns the refreshed record
func (r *GrievanceRepository) Update(id int64, fields map[string]interface{}) (*grievance.Grievance, error) {
	res := r.db.Model(&grievance.Grievance{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrGrievanceNotFound
	}
	return r.GetByID(id)
}

// Statistics aggregates grievance counts, optionally scoped to one submitter
func (r *GrievanceRepository) Statistics(scopeUserID *int64) (*grievance.Statistics, error) {
	scoped := func() *gorm.DB {
		q := r.db.Model(&grievance.Grievance{})
		if scopeUserID != nil {
			q = q.Where("submitted_by = ?", *scopeUserID)
		}
		return q
	}

	stats := &grievance.Statistics{}

	if err := scoped().Count(&stats.TotalGrievances).Error; err != nil {
		return nil, err
	}

	countBy := func(column string) ([]grievance.CountByField, error) {
		var rows []grievance.CountByField
		err := scoped().
			Select(column + " AS value, COUNT(*) AS count").
			Group(column).
			Scan(&rows).Error
		return rows, err
	}

	var err error
	if stats.ByStatus, err = countBy("status"); err != nil {
		return nil, err
	}
	if stats.ByCategory, err = countBy("category"); err != nil {
		return nil, err
	}
	if stats.ByPriority, err = countBy("priority"); err != nil {
		return nil, err
	}

	err = scoped().
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentGrievances).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// CreateComment appends a comment to a grievance thread
func (r *GrievanceRepository) CreateComment(c *grievance.Comment) error {
	return r.db.Create(c).Error
}

// CommentsByGrievance retrieves the comment thread in chronological order
func (r *GrievanceRepository) CommentsByGrievance(grievanceID int64) ([]*grievance.Comment, error) {
	var comments []*grievance.Comment
	err := r.db.Where("grievance_id = ?", grievanceID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CreateAttachment records attachment metadata for a grievance
func (r *GrievanceRepository) CreateAttachment(a *grievance.Attachment) error {
	return r.db.Create(a).Error
}

// AttachmentsByGrievance retrieves attachment metadata for a grievance
func (r *GrievanceRepository) AttachmentsByGrievance(grievanceID int64) ([]*grievance.Attachment, error) {
	var attachments []*grievance.Attachment
	err := r.db.Where("grievance_id = ?", grievanceID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}
