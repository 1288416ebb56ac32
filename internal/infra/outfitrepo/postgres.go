package outfitrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/closet-keeper/internal/domain/outfit"
)

// PostgresRepository implements outfit.Repository using pgx. Resolved
// item summaries are stored as a JSONB document, the photo list as a
// text array so the cascade can match with ANY().
//
// Schema:
//
//	CREATE TABLE outfits (
//	    id                text PRIMARY KEY,
//	    style             text NOT NULL,
//	    suitable_weathers text NOT NULL,
//	    waterproof        boolean NOT NULL,
//	    clothing_items    jsonb NOT NULL,
//	    outfit_photo      text[] NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert implements outfit.Repository.
func (r *PostgresRepository) Insert(ctx context.Context, o outfit.Outfit) error {
	items, err := json.Marshal(o.ClothingItems)
	if err != nil {
		return fmt.Errorf("encode clothing items: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO outfits (id, style, suitable_weathers, waterproof, clothing_items, outfit_photo)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, string(o.Style), string(o.SuitableWeathers), o.Waterproof, items, o.OutfitPhoto)
	return err
}

// FindByID implements outfit.Repository.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (outfit.Outfit, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, style, suitable_weathers, waterproof, clothing_items, outfit_photo
		FROM outfits
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return outfit.Outfit{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return outfit.Outfit{}, false, rows.Err()
	}
	o, err := scanOutfit(rows)
	if err != nil {
		return outfit.Outfit{}, false, err
	}
	return o, true, rows.Err()
}

// Update implements outfit.Repository.
func (r *PostgresRepository) Update(ctx context.Context, o outfit.Outfit) (bool, error) {
	items, err := json.Marshal(o.ClothingItems)
	if err != nil {
		return false, fmt.Errorf("encode clothing items: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE outfits
		SET style = $2, suitable_weathers = $3, waterproof = $4, clothing_items = $5, outfit_photo = $6
		WHERE id = $1
	`, o.ID, string(o.Style), string(o.SuitableWeathers), o.Waterproof, items, o.OutfitPhoto)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete implements outfit.Repository.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM outfits WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Query implements outfit.Repository.
func (r *PostgresRepository) Query(ctx context.Context, spec outfit.QuerySpec) ([]outfit.Outfit, error) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if spec.ID != "" {
		args = append(args, spec.ID)
		clauses = append(clauses, fmt.Sprintf("id = $%d", len(args)))
	}
	if spec.Style != "" {
		args = append(args, spec.Style)
		clauses = append(clauses, fmt.Sprintf("style = $%d", len(args)))
	}
	if spec.SuitableWeathers != "" {
		args = append(args, spec.SuitableWeathers)
		clauses = append(clauses, fmt.Sprintf("suitable_weathers = $%d", len(args)))
	}
	if spec.Waterproof != nil {
		args = append(args, *spec.Waterproof)
		clauses = append(clauses, fmt.Sprintf("waterproof = $%d", len(args)))
	}

	query := `SELECT id, style, suitable_weathers, waterproof, clothing_items, outfit_photo FROM outfits`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]outfit.Outfit, 0)
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// DeleteByPhoto implements closet.OutfitPurger.
func (r *PostgresRepository) DeleteByPhoto(ctx context.Context, photo string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		DELETE FROM outfits
		WHERE $1 = ANY(outfit_photo)
		RETURNING id
	`, photo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanOutfit(rows pgx.Rows) (outfit.Outfit, error) {
	var (
		o       outfit.Outfit
		style   string
		weather string
		items   []byte
	)
	if err := rows.Scan(&o.ID, &style, &weather, &o.Waterproof, &items, &o.OutfitPhoto); err != nil {
		return outfit.Outfit{}, err
	}
	if err := json.Unmarshal(items, &o.ClothingItems); err != nil {
		return outfit.Outfit{}, fmt.Errorf("decode clothing items: %w", err)
	}
	o.Style = outfit.Style(style)
	o.SuitableWeathers = outfit.Weather(weather)
	return o, nil
}

var _ outfit.Repository = (*PostgresRepository)(nil)
