package cooperatives

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCooperativeNotFound = errors.New("cooperative not found")

type Repository interface {
	Create(ctx context.Context, coop *Cooperative) error
	GetByID(ctx context.Context, id uuid.UUID) (*Cooperative, error)
	ListActive(ctx context.Context) ([]Cooperative, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, coop *Cooperative) error {
	return r.db.WithContext(ctx).Create(coop).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Cooperative, error) {
	var coop Cooperative
	err := r.db.WithContext(ctx).First(&coop, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCooperativeNotFound
		}
		return nil, err
	}
	return &coop, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Cooperative, error) {
	var coops []Cooperative
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&coops).Error
	return coops, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Cooperative{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCooperativeNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Cooperative{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCooperativeNotFound
	}
	return nil
}
