package closetrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
)

// PostgresRepository implements closet.Repository using pgx.
//
// Schema:
//
//	CREATE TABLE clothes (
//	    id          text PRIMARY KEY,
//	    type        text NOT NULL,
//	    color       text NOT NULL,
//	    photo       text NOT NULL UNIQUE,
//	    water_proof boolean NOT NULL DEFAULT false
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert implements closet.Repository.
func (r *PostgresRepository) Insert(ctx context.Context, item closet.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clothes (id, type, color, photo, water_proof)
		VALUES ($1, $2, $3, $4, $5)
	`, item.ID, string(item.Type), item.Color, item.Photo, item.WaterProof)
	return err
}

// FindByID implements closet.Repository.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (closet.Item, bool, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByPhoto implements closet.Repository.
func (r *PostgresRepository) FindByPhoto(ctx context.Context, photo string) (closet.Item, bool, error) {
	return r.findOne(ctx, `WHERE photo = $1`, photo)
}

func (r *PostgresRepository) findOne(ctx context.Context, where string, arg any) (closet.Item, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, color, photo, water_proof
		FROM clothes `+where+` LIMIT 1
	`, arg)
	if err != nil {
		return closet.Item{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return closet.Item{}, false, rows.Err()
	}
	item, err := scanItem(rows)
	if err != nil {
		return closet.Item{}, false, err
	}
	return item, true, rows.Err()
}

// FindByIDs implements closet.Repository.
func (r *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]closet.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, color, photo, water_proof
		FROM clothes
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// List implements closet.Repository.
func (r *PostgresRepository) List(ctx context.Context, filter closet.Filter) ([]closet.Item, error) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if filter.Type != "" {
		args = append(args, filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Color != "" {
		args = append(args, filter.Color)
		clauses = append(clauses, fmt.Sprintf("color = $%d", len(args)))
	}
	if filter.WaterProof != nil {
		args = append(args, *filter.WaterProof)
		clauses = append(clauses, fmt.Sprintf("water_proof = $%d", len(args)))
	}

	query := `SELECT id, type, color, photo, water_proof FROM clothes`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// UpdatePhoto implements closet.Repository.
func (r *PostgresRepository) UpdatePhoto(ctx context.Context, id, photo string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE clothes SET photo = $2 WHERE id = $1`, id, photo)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete implements closet.Repository.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clothes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func collectItems(rows pgx.Rows) ([]closet.Item, error) {
	out := make([]closet.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanItem(rows pgx.Rows) (closet.Item, error) {
	var (
		item     closet.Item
		itemType string
	)
	if err := rows.Scan(&item.ID, &itemType, &item.Color, &item.Photo, &item.WaterProof); err != nil {
		return closet.Item{}, err
	}
	item.Type = closet.ItemType(itemType)
	return item, nil
}

var _ closet.Repository = (*PostgresRepository)(nil)
