package gormdb

import (
	"context"

	"dog-breeds-api/internal/domain/temperaments"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TemperamentsRepo struct {
	db *gorm.DB
}

func NewTemperamentsRepo(db *gorm.DB) *TemperamentsRepo {
	return &TemperamentsRepo{db: db}
}

func (r *TemperamentsRepo) List(ctx context.Context) ([]temperaments.Temperament, error) {
	var rows []Temperament
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	out := make([]temperaments.Temperament, 0, len(rows))
	for _, t := range rows {
		out = append(out, t.toDomain())
	}
	return out, nil
}

func (r *TemperamentsRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Temperament{}).Count(&total).Error; err != nil {
		return 0, errors.WithStack(err)
	}
	return total, nil
}

func (r *TemperamentsRepo) InsertIgnoringDuplicates(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	rows := make([]Temperament, 0, len(names))
	for _, n := range names {
		rows = append(rows, Temperament{Name: n})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		CreateInBatches(rows, 100).Error
	return errors.WithStack(err)
}
