package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindByIDForUpdate locks the row for the rest of the transaction so
	// concurrent reparenting cannot race on the cached counts.
	FindByIDForUpdate(ctx context.Context, id string) (*Employee, error)
	FindPage(ctx context.Context, offset, limit int, sortBy, order string) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindBySupervisor(ctx context.Context, supervisorID string) ([]Employee, error)
	FindColleagues(ctx context.Context, teamID, excludeID string) ([]Employee, error)
	// SupervisorOf returns the supervisor pointer of one row, with
	// gorm.ErrRecordNotFound when the row itself is absent.
	SupervisorOf(ctx context.Context, id string) (*uuid.UUID, error)
	Save(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
	// AdjustSubordinates applies a relative delta in a single UPDATE so
	// concurrent adjustments never lose updates.
	AdjustSubordinates(ctx context.Context, id string, delta int) error
	ReassignSubordinates(ctx context.Context, fromID string, to *uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindPage(ctx context.Context, offset, limit int, sortBy, order string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order(sortBy + " " + order).
		Offset(offset).
		Limit(limit).
		Find(&empls).Error
	return empls, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&total).Error
	return total, err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindBySupervisor(ctx context.Context, supervisorID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("supervisor_id = ?", supervisorID).
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindColleagues(ctx context.Context, teamID, excludeID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND id <> ?", teamID, excludeID).
		Find(&empls).Error
	return empls, err
}

func (r *repository) SupervisorOf(ctx context.Context, id string) (*uuid.UUID, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Select("id", "supervisor_id").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return empl.SupervisorID, nil
}

func (r *repository) Save(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) AdjustSubordinates(ctx context.Context, id string, delta int) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("subordinates_count", gorm.Expr("subordinates_count + ?", delta)).Error
}

func (r *repository) ReassignSubordinates(ctx context.Context, fromID string, to *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("supervisor_id = ?", fromID).
		Update("supervisor_id", to).Error
}
