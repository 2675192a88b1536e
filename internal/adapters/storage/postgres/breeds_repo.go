package postgres

import (
	"context"
	"database/sql"

	"dog-breeds-api/internal/domain/breeds"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

// selectDogs trae cada dog con sus temperamentos (una fila por par dog/temperamento).
// Las columnas de dog_temperaments no se exponen.
const selectDogs = `
	SELECT
		d.id, d.name,
		d.height_min, d.height_max,
		d.weight_min, d.weight_max,
		d.years_life, d.image,
		t.id, t.name
	FROM dogs d
	LEFT JOIN dog_temperaments dt ON dt.dog_id = d.id
	LEFT JOIN temperaments t ON t.id = dt.temperament_id
`

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, selectDogs+` ORDER BY d.created_at ASC, d.id, t.name ASC`)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	return scanDogs(rows)
}

func (r *BreedsRepo) GetByID(ctx context.Context, id uuid.UUID) (breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, selectDogs+` WHERE d.id = $1 ORDER BY t.name ASC`, id)
	if err != nil {
		return breeds.Breed{}, errors.WithStack(err)
	}
	defer rows.Close()

	out, err := scanDogs(rows)
	if err != nil {
		return breeds.Breed{}, err
	}
	if len(out) == 0 {
		return breeds.Breed{}, errors.WithStack(breeds.ErrNotFound)
	}
	return out[0], nil
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	id, ok := b.ID.Local()
	if !ok {
		return errors.New("breed local id required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (
			id, name,
			height_min, height_max,
			weight_min, weight_max,
			years_life, image
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		id,
		b.Name,
		toNullFloat(b.Height.Min),
		toNullFloat(b.Height.Max),
		toNullFloat(b.Weight.Min),
		toNullFloat(b.Weight.Max),
		b.YearsLife,
		b.Image,
	)
	return errors.WithStack(err)
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	id, ok := b.ID.Local()
	if !ok {
		return errors.WithStack(breeds.ErrNotFound)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			height_min = $3,
			height_max = $4,
			weight_min = $5,
			weight_max = $6,
			years_life = $7,
			image = $8,
			updated_at = now()
		WHERE id = $1
	`,
		id,
		b.Name,
		toNullFloat(b.Height.Min),
		toNullFloat(b.Height.Max),
		toNullFloat(b.Weight.Min),
		toNullFloat(b.Weight.Max),
		b.YearsLife,
		b.Image,
	)
	if err != nil {
		return errors.WithStack(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.WithStack(breeds.ErrNotFound)
	}
	return nil
}

// Delete borra el dog; dog_temperaments cae por ON DELETE CASCADE.
func (r *BreedsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return errors.WithStack(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.WithStack(breeds.ErrNotFound)
	}
	return nil
}

func (r *BreedsRepo) SetTemperaments(ctx context.Context, id uuid.UUID, temperamentIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM dogs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errors.WithStack(breeds.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dog_temperaments WHERE dog_id = $1`, id); err != nil {
		return errors.WithStack(err)
	}

	// Solo se asocian ids que existen; el resto se ignora.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO dog_temperaments (dog_id, temperament_id)
		SELECT $1::uuid, t.id FROM temperaments t WHERE t.id = ANY($2::bigint[])
		ON CONFLICT DO NOTHING
	`, id, temperamentIDs); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(tx.Commit())
}

func scanDogs(rows *sql.Rows) ([]breeds.Breed, error) {
	out := make([]breeds.Breed, 0)
	index := map[uuid.UUID]int{}

	for rows.Next() {
		var (
			id                     uuid.UUID
			b                      breeds.Breed
			hMin, hMax, wMin, wMax sql.NullFloat64
			tID                    sql.NullInt64
			tName                  sql.NullString
		)
		if err := rows.Scan(
			&id,
			&b.Name,
			&hMin, &hMax,
			&wMin, &wMax,
			&b.YearsLife,
			&b.Image,
			&tID,
			&tName,
		); err != nil {
			return nil, errors.WithStack(err)
		}

		i, seen := index[id]
		if !seen {
			b.ID = breeds.LocalID(id)
			b.Height = breeds.Range{Min: fromNullFloat(hMin), Max: fromNullFloat(hMax)}
			b.Weight = breeds.Range{Min: fromNullFloat(wMin), Max: fromNullFloat(wMax)}
			b.Temperaments = []breeds.TemperamentTag{}
			out = append(out, b)
			i = len(out) - 1
			index[id] = i
		}

		if tID.Valid {
			out[i].Temperaments = append(out[i].Temperaments, breeds.TemperamentTag{ID: tID.Int64, Name: tName.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	for i := range out {
		out[i].Temperament = breeds.JoinTemperaments(out[i].Temperaments)
	}
	return out, nil
}

// height/weight son nullable: sin dato => NULL (nunca 0).
func toNullFloat(m breeds.Measure) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}

func fromNullFloat(n sql.NullFloat64) breeds.Measure {
	if !n.Valid {
		return breeds.None()
	}
	return breeds.Some(n.Float64)
}
