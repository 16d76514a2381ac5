package timeentry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *TimeEntry) error
	FindLatestByPerson(ctx context.Context, personID uuid.UUID) (*TimeEntry, error)
	FindAll(ctx context.Context, personID uuid.UUID, from, to *time.Time) ([]TimeEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindLatestByPerson(ctx context.Context, personID uuid.UUID) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("timestamp DESC").
		First(&e).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context, personID uuid.UUID, from, to *time.Time) ([]TimeEntry, error) {
	db := r.db.WithContext(ctx).Where("person_id = ?", personID)
	if from != nil {
		db = db.Where("timestamp >= ?", *from)
	}
	if to != nil {
		db = db.Where("timestamp < ?", *to)
	}

	var rows []TimeEntry
	err := db.Order("timestamp DESC").Find(&rows).Error
	return rows, err
}
