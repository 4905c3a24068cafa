package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/grievance-management/internal/auth"
	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(u *coreuser.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) GetByEmail(email string) (*coreuser.User, error) {
	var u coreuser.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(id int64) (*coreuser.User, error) {
	var u coreuser.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) UpdatePassword(userID int64, passwordHash string) error {
	return r.db.Model(&coreuser.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}
