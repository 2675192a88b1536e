package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS dogs (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	height_min  DOUBLE PRECISION,
	height_max  DOUBLE PRECISION,
	weight_min  DOUBLE PRECISION,
	weight_max  DOUBLE PRECISION,
	years_life  TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS temperaments (
	id    BIGSERIAL PRIMARY KEY,
	name  TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS dog_temperaments (
	dog_id          UUID   NOT NULL REFERENCES dogs(id) ON DELETE CASCADE,
	temperament_id  BIGINT NOT NULL REFERENCES temperaments(id) ON DELETE CASCADE,
	PRIMARY KEY (dog_id, temperament_id)
);
`

// Migrate crea las tablas si no existen. Idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "migrate postgres schema")
	}
	return nil
}
