package ratingrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/closet-keeper/internal/domain/rating"
)

// PostgresRepository implements rating.Repository using pgx.
//
// Schema:
//
//	CREATE TABLE ratings (
//	    id       text PRIMARY KEY,
//	    scores   integer[] NOT NULL DEFAULT '{}',
//	    average  double precision NOT NULL DEFAULT 0,
//	    pictures text[] NOT NULL DEFAULT '{}'
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create implements rating.Repository. Recreating under an existing id
// resets the record to an empty score list.
func (r *PostgresRepository) Create(ctx context.Context, outfitID string, pictures []string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ratings (id, scores, average, pictures)
		VALUES ($1, '{}', 0, $2)
		ON CONFLICT (id) DO UPDATE
		SET scores = '{}', average = 0, pictures = EXCLUDED.pictures
	`, outfitID, pictures)
	return err
}

// FindByID implements rating.Repository.
func (r *PostgresRepository) FindByID(ctx context.Context, outfitID string) (rating.Rating, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, scores, average, pictures
		FROM ratings
		WHERE id = $1
		LIMIT 1
	`, outfitID)
	if err != nil {
		return rating.Rating{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return rating.Rating{}, false, rows.Err()
	}
	rec, err := scanRating(rows)
	if err != nil {
		return rating.Rating{}, false, err
	}
	return rec, true, rows.Err()
}

// List implements rating.Repository.
func (r *PostgresRepository) List(ctx context.Context) ([]rating.Rating, error) {
	return r.listWhere(ctx, ``)
}

// ListScored implements rating.Repository.
func (r *PostgresRepository) ListScored(ctx context.Context) ([]rating.Rating, error) {
	return r.listWhere(ctx, `WHERE cardinality(scores) > 0`)
}

func (r *PostgresRepository) listWhere(ctx context.Context, where string) ([]rating.Rating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, scores, average, pictures
		FROM ratings `+where+` ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]rating.Rating, 0)
	for rows.Next() {
		rec, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AppendScore implements rating.Repository with a single atomic
// find-and-update statement.
func (r *PostgresRepository) AppendScore(ctx context.Context, outfitID string, score int) (rating.Rating, bool, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE ratings
		SET scores = array_append(scores, $2),
		    average = (SELECT avg(s)::double precision FROM unnest(array_append(scores, $2)) AS s)
		WHERE id = $1
		RETURNING id, scores, average, pictures
	`, outfitID, score)
	if err != nil {
		return rating.Rating{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return rating.Rating{}, false, rows.Err()
	}
	rec, err := scanRating(rows)
	if err != nil {
		return rating.Rating{}, false, err
	}
	return rec, true, rows.Err()
}

// UpdatePictures implements rating.Repository with upsert semantics.
func (r *PostgresRepository) UpdatePictures(ctx context.Context, outfitID string, pictures []string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ratings (id, scores, average, pictures)
		VALUES ($1, '{}', 0, $2)
		ON CONFLICT (id) DO UPDATE SET pictures = EXCLUDED.pictures
	`, outfitID, pictures)
	return err
}

// Delete implements rating.Repository.
func (r *PostgresRepository) Delete(ctx context.Context, outfitID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, outfitID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteMany implements rating.Repository and closet.RatingPurger.
func (r *PostgresRepository) DeleteMany(ctx context.Context, outfitIDs []string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = ANY($1)`, outfitIDs)
	return err
}

func scanRating(rows pgx.Rows) (rating.Rating, error) {
	var rec rating.Rating
	if err := rows.Scan(&rec.ID, &rec.Scores, &rec.Average, &rec.Pictures); err != nil {
		return rating.Rating{}, err
	}
	return rec, nil
}

var _ rating.Repository = (*PostgresRepository)(nil)
