package repository

import (
	"errors"
	"time"

	formdomain "formdrop-backend/internal/form/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormFormRepository implements FormRepository using GORM
type gormFormRepository struct {
	db *gorm.DB
}

// NewGormFormRepository creates a new GORM-based FormRepository
func NewGormFormRepository(db *gorm.DB) FormRepository {
	return &gormFormRepository{db: db}
}

func (r *gormFormRepository) Create(form *formdomain.Form) error {
	if form.ID == "" {
		form.ID = uuid.New().String()
	}
	form.CreatedAt = time.Now()
	form.UpdatedAt = time.Now()
	return r.db.Create(form).Error
}

func (r *gormFormRepository) FindByID(id string) (*formdomain.Form, error) {
	var form formdomain.Form
	err := r.db.Where("id = ?", id).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

func (r *gormFormRepository) FindByUserID(userID string) ([]*formdomain.Form, error) {
	var forms []*formdomain.Form
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&forms).Error
	return forms, err
}

func (r *gormFormRepository) Update(form *formdomain.Form) error {
	form.UpdatedAt = time.Now()
	return r.db.Save(form).Error
}

func (r *gormFormRepository) Delete(id string) error {
	return r.db.Delete(&formdomain.Form{}, "id = ?", id).Error
}

func (r *gormFormRepository) CloseExpired(now time.Time) (int64, error) {
	result := r.db.Model(&formdomain.Form{}).
		Where("expiry_date IS NOT NULL AND expiry_date < ? AND access_level != ?", now, formdomain.AccessClosed).
		Updates(map[string]interface{}{
			"access_level": formdomain.AccessClosed,
			"updated_at":   now,
		})
	return result.RowsAffected, result.Error
}
