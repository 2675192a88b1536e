package gormdb

import (
	"time"

	"dog-breeds-api/internal/domain/breeds"
	"dog-breeds-api/internal/domain/temperaments"

	"github.com/google/uuid"
)

type Dog struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Name      string `gorm:"not null"`
	HeightMin *float64
	HeightMax *float64
	WeightMin *float64
	WeightMax *float64
	YearsLife string
	Image     string

	Temperaments []Temperament `gorm:"many2many:dog_temperaments;constraint:OnDelete:CASCADE;"`
}

type Temperament struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func fromBreed(b breeds.Breed) (*Dog, error) {
	id, ok := b.ID.Local()
	if !ok {
		return nil, breeds.ErrInvalidID
	}
	return &Dog{
		ID:        id.String(),
		Name:      b.Name,
		HeightMin: toPtr(b.Height.Min),
		HeightMax: toPtr(b.Height.Max),
		WeightMin: toPtr(b.Weight.Min),
		WeightMax: toPtr(b.Weight.Max),
		YearsLife: b.YearsLife,
		Image:     b.Image,
	}, nil
}

func (d *Dog) toBreed() (breeds.Breed, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return breeds.Breed{}, err
	}

	tags := make([]breeds.TemperamentTag, 0, len(d.Temperaments))
	for _, t := range d.Temperaments {
		tags = append(tags, breeds.TemperamentTag{ID: t.ID, Name: t.Name})
	}

	return breeds.Breed{
		ID:           breeds.LocalID(id),
		Name:         d.Name,
		Height:       breeds.Range{Min: fromPtr(d.HeightMin), Max: fromPtr(d.HeightMax)},
		Weight:       breeds.Range{Min: fromPtr(d.WeightMin), Max: fromPtr(d.WeightMax)},
		YearsLife:    d.YearsLife,
		Image:        d.Image,
		Temperament:  breeds.JoinTemperaments(tags),
		Temperaments: tags,
	}, nil
}

func (t Temperament) toDomain() temperaments.Temperament {
	return temperaments.Temperament{ID: t.ID, Name: t.Name}
}

func toPtr(m breeds.Measure) *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

func fromPtr(p *float64) breeds.Measure {
	if p == nil {
		return breeds.None()
	}
	return breeds.Some(*p)
}
