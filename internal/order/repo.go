// Package order defines orders, their line items and the order store.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrNotPending        = errors.New("order is not pending")
	ErrTableNotAvailable = errors.New("table is not available")
	ErrTableNotFound     = errors.New("table not found")
)

// ItemsFunc receives the current line items of a pending order and returns
// the replacement list.
type ItemsFunc func(items []LineItem) ([]LineItem, error)

type Repository interface {
	// Create inserts an order that references no table.
	Create(ctx context.Context, o *Order) error
	// CreateSeated inserts o and marks *o.TableID Occupied as one unit. It
	// fails with ErrTableNotAvailable and writes nothing if the table is not
	// Available.
	CreateSeated(ctx context.Context, o *Order) error
	// CreateCompleted inserts a takeaway or delivery order already Completed,
	// so a paid-at-counter order is written once or not at all.
	CreateCompleted(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListCreatedSince returns orders created at or after since, oldest first.
	ListCreatedSince(ctx context.Context, since time.Time) ([]Order, error)
	FindPendingByTable(ctx context.Context, tableID string) (*Order, error)
	CountPendingByTable(ctx context.Context, tableID string) (int, error)
	// UpdateItems rewrites the items and total of a pending order from its
	// current stored items.
	UpdateItems(ctx context.Context, id string, fn ItemsFunc) (*Order, error)
	// Complete marks a pending order Completed and frees its table, if any,
	// as one unit.
	Complete(ctx context.Context, id string) (*Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `id, items::text, total::text, status, type, table_id, created_by,
	created_at, completed_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO orders (id, items, total, status, type, table_id, created_by, created_at, updated_at)
		VALUES ($1,$2::jsonb,$3::numeric,$4,$5,$6,$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, items, o.Total.String(), string(o.Status), string(o.Type), o.TableID, o.CreatedBy).
		Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *PGRepo) CreateCompleted(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}
	var completedAt time.Time
	if err := r.db.QueryRow(ctx, `
		INSERT INTO orders (id, items, total, status, type, table_id, created_by, created_at, completed_at, updated_at)
		VALUES ($1,$2::jsonb,$3::numeric,'Completed',$4,$5,$6,NOW(),NOW(),NOW())
		RETURNING created_at, completed_at, updated_at
	`, o.ID, items, o.Total.String(), string(o.Type), o.TableID, o.CreatedBy).
		Scan(&o.CreatedAt, &completedAt, &o.UpdatedAt); err != nil {
		return err
	}
	o.Status, o.CompletedAt = StatusCompleted, &completedAt
	return nil
}

func (r *PGRepo) CreateSeated(ctx context.Context, o *Order) error {
	if !o.HasTable() {
		return ErrTableNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE tables SET status = 'Occupied', updated_at = NOW()
		WHERE id = $1 AND status = 'Available'
	`, *o.TableID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTableNotAvailable
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (id, items, total, status, type, table_id, created_by, created_at, updated_at)
		VALUES ($1,$2::jsonb,$3::numeric,$4,$5,$6,$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, items, o.Total.String(), string(o.Status), string(o.Type), o.TableID, o.CreatedBy).
		Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE created_at >= $1
		ORDER BY created_at ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) FindPendingByTable(ctx context.Context, tableID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE table_id = $1 AND status = 'Pending'
		ORDER BY created_at DESC LIMIT 1
	`, tableID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) CountPendingByTable(ctx context.Context, tableID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders WHERE table_id = $1 AND status = 'Pending'
	`, tableID).Scan(&n)
	return n, err
}

func (r *PGRepo) UpdateItems(ctx context.Context, id string, fn ItemsFunc) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := lockOrder(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, ErrNotPending
	}

	items, err := fn(o.Items)
	if err != nil {
		return nil, err
	}
	enc, err := encodeItems(items)
	if err != nil {
		return nil, err
	}
	total := SumTotal(items)

	if err := tx.QueryRow(ctx, `
		UPDATE orders SET items = $2::jsonb, total = $3::numeric, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, id, enc, total.String()).Scan(&o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Items, o.Total = items, total
	return o, nil
}

func (r *PGRepo) Complete(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := lockOrder(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, ErrNotPending
	}

	var completedAt time.Time
	if err := tx.QueryRow(ctx, `
		UPDATE orders SET status = 'Completed', completed_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING completed_at, updated_at
	`, id).Scan(&completedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if o.HasTable() {
		if _, err := tx.Exec(ctx, `
			UPDATE tables SET status = 'Available', updated_at = NOW() WHERE id = $1
		`, *o.TableID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Status, o.CompletedAt = StatusCompleted, &completedAt
	return o, nil
}

func (r *PGRepo) Cancel(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		UPDATE orders SET status = 'Cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
		RETURNING `+orderColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		// distinguish a missing order from a finished one
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, ErrNotPending
	}
	return o, err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func lockOrder(ctx context.Context, tx pgx.Tx, id string) (*Order, error) {
	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func encodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o            Order
		items, total string
		status, typ  string
	)
	if err := row.Scan(&o.ID, &items, &total, &status, &typ, &o.TableID, &o.CreatedBy,
		&o.CreatedAt, &o.CompletedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status, o.Type = Status(status), Type(typ)
	var err error
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}
