package review

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *PerformanceReview) error
	FindByID(ctx context.Context, id string) (*PerformanceReview, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error)
	FindAll(ctx context.Context) ([]PerformanceReview, error)
	Save(ctx context.Context, r *PerformanceReview) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rev *PerformanceReview) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PerformanceReview, error) {
	var rev PerformanceReview
	err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error
	return &rev, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error) {
	var revs []PerformanceReview
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("review_date DESC").
		Find(&revs).Error
	return revs, err
}

func (r *repository) FindAll(ctx context.Context) ([]PerformanceReview, error) {
	var revs []PerformanceReview
	err := r.db.WithContext(ctx).Order("review_date DESC").Find(&revs).Error
	return revs, err
}

func (r *repository) Save(ctx context.Context, rev *PerformanceReview) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PerformanceReview{}, "id = ?", id).Error
}
