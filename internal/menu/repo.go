// Package menu holds the catalog: menu items, their sizes and add-ons, and the unit pricer.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("menu item not found")
)

type Query struct {
	Category string
}

type Repository interface {
	Create(ctx context.Context, m *MenuItem) error
	GetByID(ctx context.Context, id string) (*MenuItem, error)
	List(ctx context.Context, q Query) ([]MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, m *MenuItem) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const menuColumns = `id, name, category, price::text, description, image_url, image_hint,
	sizes::text, add_ons::text, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, m *MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sizes, addOns, err := encodeVariants(m)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (id, name, category, price, description, image_url, image_hint, sizes, add_ons, created_at, updated_at)
		VALUES ($1,$2,$3,$4::numeric,$5,$6,$7,$8::jsonb,$9::jsonb,NOW(),NOW())
		RETURNING created_at, updated_at
	`, m.ID, m.Name, m.Category, m.Price.String(), m.Description, m.ImageURL, m.ImageHint, sizes, addOns).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	m, err := scanItem(r.db.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+menuColumns+`
		FROM menu_items
		WHERE ($1 = '' OR category = $1)
		ORDER BY category, name
	`, strings.TrimSpace(q.Category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MenuItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *PGRepo) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM menu_items ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces every editable field of the item.
func (r *PGRepo) Update(ctx context.Context, m *MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sizes, addOns, err := encodeVariants(m)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $2,
		    category = $3,
		    price = $4::numeric,
		    description = $5,
		    image_url = $6,
		    image_hint = $7,
		    sizes = $8::jsonb,
		    add_ons = $9::jsonb,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, m.ID, m.Name, m.Category, m.Price.String(), m.Description, m.ImageURL, m.ImageHint, sizes, addOns).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func encodeVariants(m *MenuItem) (string, string, error) {
	sizes := m.Sizes
	if sizes == nil {
		sizes = []Size{}
	}
	addOns := m.AddOns
	if addOns == nil {
		addOns = []AddOn{}
	}
	sb, err := json.Marshal(sizes)
	if err != nil {
		return "", "", err
	}
	ab, err := json.Marshal(addOns)
	if err != nil {
		return "", "", err
	}
	return string(sb), string(ab), nil
}

func scanItem(row pgx.Row) (*MenuItem, error) {
	var (
		m                    MenuItem
		price, sizes, addOns string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &price, &m.Description, &m.ImageURL, &m.ImageHint,
		&sizes, &addOns, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if m.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sizes), &m.Sizes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(addOns), &m.AddOns); err != nil {
		return nil, err
	}
	return &m, nil
}
