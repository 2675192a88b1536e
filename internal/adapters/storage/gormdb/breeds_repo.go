package gormdb

import (
	"context"
	"time"

	"dog-breeds-api/internal/domain/breeds"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BreedsRepo struct {
	db *gorm.DB
}

func NewBreedsRepo(db *gorm.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func preloadTemperaments(db *gorm.DB) *gorm.DB {
	return db.Preload("Temperaments", func(db *gorm.DB) *gorm.DB {
		return db.Order("temperaments.name ASC")
	})
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	var dogs []Dog
	if err := preloadTemperaments(r.db.WithContext(ctx)).Order("created_at ASC").Find(&dogs).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	out := make([]breeds.Breed, 0, len(dogs))
	for i := range dogs {
		b, err := dogs[i].toBreed()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BreedsRepo) GetByID(ctx context.Context, id uuid.UUID) (breeds.Breed, error) {
	var dog Dog
	err := preloadTemperaments(r.db.WithContext(ctx)).First(&dog, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return breeds.Breed{}, errors.WithStack(breeds.ErrNotFound)
		}
		return breeds.Breed{}, errors.WithStack(err)
	}

	b, err := dog.toBreed()
	return b, errors.WithStack(err)
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	dog, err := fromBreed(b)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(r.db.WithContext(ctx).Create(dog).Error)
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	dog, err := fromBreed(b)
	if err != nil {
		return errors.WithStack(breeds.ErrNotFound)
	}

	// map para que los nil (sin dato) se escriban como NULL
	res := r.db.WithContext(ctx).Model(&Dog{}).Where("id = ?", dog.ID).Updates(map[string]any{
		"name":       dog.Name,
		"height_min": dog.HeightMin,
		"height_max": dog.HeightMax,
		"weight_min": dog.WeightMin,
		"weight_max": dog.WeightMax,
		"years_life": dog.YearsLife,
		"image":      dog.Image,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.WithStack(breeds.ErrNotFound)
	}
	return nil
}

func (r *BreedsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM dog_temperaments WHERE dog_id = ?", id.String()).Error; err != nil {
			return errors.WithStack(err)
		}

		res := tx.Delete(&Dog{}, "id = ?", id.String())
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.WithStack(breeds.ErrNotFound)
		}
		return nil
	})
}

func (r *BreedsRepo) SetTemperaments(ctx context.Context, id uuid.UUID, temperamentIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dog Dog
		if err := tx.First(&dog, "id = ?", id.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(breeds.ErrNotFound)
			}
			return errors.WithStack(err)
		}

		// Solo ids existentes; los desconocidos se ignoran.
		found := make([]Temperament, 0)
		if len(temperamentIDs) > 0 {
			if err := tx.Where("id IN ?", temperamentIDs).Find(&found).Error; err != nil {
				return errors.WithStack(err)
			}
		}

		if len(found) == 0 {
			return errors.WithStack(tx.Model(&dog).Association("Temperaments").Clear())
		}
		return errors.WithStack(tx.Model(&dog).Association("Temperaments").Replace(found))
	})
}
