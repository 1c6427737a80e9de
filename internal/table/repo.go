// Package table manages the dining room tables.
package table

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("table not found")
	ErrDuplicateNumber = errors.New("table number already in use")
	ErrHasPendingOrder = errors.New("table has a pending order")
)

type Repository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, id string) (*Table, error)
	// List returns every table ordered by number.
	List(ctx context.Context) ([]Table, error)
	SetStatus(ctx context.Context, id string, s Status) error
	// Delete removes a table unless a pending order references it, in which
	// case it fails with ErrHasPendingOrder and removes nothing.
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, t *Table) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO tables (id, number, capacity, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		RETURNING created_at, updated_at
	`, t.ID, t.Number, t.Capacity, string(t.Status)).Scan(&t.CreatedAt, &t.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateNumber
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		t      Table
		status string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, number, capacity, status, created_at, updated_at
		FROM tables WHERE id=$1
	`, id).Scan(&t.ID, &t.Number, &t.Capacity, &status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Status = Status(status)
	return &t, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, number, capacity, status, created_at, updated_at
		FROM tables ORDER BY number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Table{}
	for rows.Next() {
		var (
			t      Table
			status string
		)
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Status = Status(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetStatus(ctx context.Context, id string, s Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE tables SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, string(s))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Seating updates this row, so the lock orders us after any in-flight
	// seat and the DELETE below sees its order.
	var locked string
	err = tx.QueryRow(ctx, `SELECT id FROM tables WHERE id=$1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	cmd, err := tx.Exec(ctx, `
		DELETE FROM tables WHERE id=$1
		AND NOT EXISTS (SELECT 1 FROM orders WHERE table_id=$1 AND status='Pending')
	`, id)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, ErrHasPendingOrder
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
