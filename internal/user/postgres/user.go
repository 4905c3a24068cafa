package postgres

import (
	"errors"
	"time"

	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
	"github.com/frahmantamala/grievance-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*coreuser.User, error) {
	var u coreuser.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*coreuser.User, error) {
	var u coreuser.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByDepartment(department string) ([]*coreuser.User, error) {
	var users []*coreuser.User
	err := r.db.Where("department = ?", department).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateProfile(id int64, fields map[string]interface{}) (*coreuser.User, error) {
	fields["updated_at"] = time.Now()

	res := r.db.Model(&coreuser.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, user.ErrNotFound
	}

	return r.GetByID(id)
}
