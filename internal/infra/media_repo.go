package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMediaRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMediaRepo(pool *pgxpool.Pool) ports.MediaRepository {
	return &PostgresMediaRepo{pool: pool}
}

const mediaColumns = `id, year, square_index, place, description, media_type, url, caption, coords, deleted, created_at`

func scanMedia(row pgx.Row) (*models.MediaItem, error) {
	var (
		m      models.MediaItem
		coords []byte
	)
	err := row.Scan(
		&m.ID,
		&m.Year,
		&m.SquareIndex,
		&m.Place,
		&m.Description,
		&m.Type,
		&m.URL,
		&m.Caption,
		&coords,
		&m.Deleted,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if coords != nil {
		m.Coords = coords
	}
	return &m, nil
}

func (r *PostgresMediaRepo) InsertMedia(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO media (id, year, square_index, place, description, media_type, url, caption, coords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var coords []byte
	if len(item.Coords) > 0 {
		coords = item.Coords
	}

	row := r.pool.QueryRow(ctx, query,
		item.ID, item.Year, item.SquareIndex, item.Place, item.Description,
		string(item.Type), item.URL, item.Caption, coords,
	)
	if err := row.Scan(&item.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: insert media: %w", ports.ErrStorage, err)
	}
	return item, nil
}

func (r *PostgresMediaRepo) GetMediaByID(ctx context.Context, id string) (*models.MediaItem, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`

	m, err := scanMedia(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("media %s: %w", id, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get media by id: %w", ports.ErrStorage, err)
	}
	return m, nil
}

func mediaWhere(f models.MediaFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Type != "" {
		add("media_type = $%d", string(f.Type))
	}
	if f.Year != nil {
		add("year = $%d", *f.Year)
	}
	if f.SquareIndex != nil {
		add("square_index = $%d", *f.SquareIndex)
	}
	if !f.IncludeDeleted {
		conds = append(conds, "deleted = FALSE")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresMediaRepo) QueryMedia(ctx context.Context, f models.MediaFilter) ([]models.MediaItem, error) {
	where, args := mediaWhere(f)
	query := `SELECT ` + mediaColumns + ` FROM media` + where + ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query media: %w", ports.ErrStorage, err)
	}
	defer rows.Close()

	var out []models.MediaItem
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan media: %w", ports.ErrStorage, err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query media: %w", ports.ErrStorage, err)
	}
	return out, nil
}

func (r *PostgresMediaRepo) ListMediaIDs(ctx context.Context, f models.MediaFilter) ([]string, error) {
	where, args := mediaWhere(f)
	query := `SELECT id FROM media` + where + ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list media ids: %w", ports.ErrStorage, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: list media ids: %w", ports.ErrStorage, err)
	}
	return ids, nil
}

func (r *PostgresMediaRepo) MarkDeleted(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE media SET deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: mark media deleted: %w", ports.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", id, ports.ErrNotFound)
	}
	return nil
}
