package postgres

import (
	"context"
	"database/sql"

	"dog-breeds-api/internal/domain/temperaments"

	"github.com/pkg/errors"
)

type TemperamentsRepo struct {
	db *sql.DB
}

func NewTemperamentsRepo(db *sql.DB) *TemperamentsRepo {
	return &TemperamentsRepo{db: db}
}

func (r *TemperamentsRepo) List(ctx context.Context) ([]temperaments.Temperament, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name
		FROM temperaments
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	out := make([]temperaments.Temperament, 0)
	for rows.Next() {
		var t temperaments.Temperament
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, errors.WithStack(err)
		}
		out = append(out, t)
	}
	return out, errors.WithStack(rows.Err())
}

func (r *TemperamentsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM temperaments`).Scan(&n); err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

func (r *TemperamentsRepo) InsertIgnoringDuplicates(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO temperaments (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING
	`, names)
	return errors.WithStack(err)
}
