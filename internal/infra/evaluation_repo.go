package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgForeignKeyViolation = "23503"

type PostgresEvaluationRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresEvaluationRepo(pool *pgxpool.Pool) ports.EvaluationRepository {
	return &PostgresEvaluationRepo{pool: pool}
}

const evaluationColumns = `id, evaluator_id, media_id, beauty, boring, depressing, lively, wealthy, safe, comment, created_at`

func scanEvaluation(row pgx.Row) (*models.Evaluation, error) {
	var e models.Evaluation
	err := row.Scan(
		&e.ID,
		&e.EvaluatorID,
		&e.MediaID,
		&e.Beauty,
		&e.Boring,
		&e.Depressing,
		&e.Lively,
		&e.Wealthy,
		&e.Safe,
		&e.Comment,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// InsertEvaluation relies on the (evaluator_id, media_id) unique constraint:
// a concurrent duplicate loses inside postgres and comes back with no row.
func (r *PostgresEvaluationRepo) InsertEvaluation(ctx context.Context, e *models.Evaluation) (*models.Evaluation, error) {
	query := `
		INSERT INTO evaluation (` + evaluationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (evaluator_id, media_id) DO NOTHING
		RETURNING id
	`
	var id string
	err := r.pool.QueryRow(ctx, query,
		e.ID, e.EvaluatorID, e.MediaID,
		e.Beauty, e.Boring, e.Depressing, e.Lively, e.Wealthy, e.Safe,
		e.Comment, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("evaluator %s media %s: %w", e.EvaluatorID, e.MediaID, ports.ErrConflict)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, fmt.Errorf("media %s: %w", e.MediaID, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: insert evaluation: %w", ports.ErrStorage, err)
	}
	return e, nil
}

// UpdateEvaluation locks the row for the duration of mutate, so the owner and
// window checks inside mutate see the row as it will be written.
func (r *PostgresEvaluationRepo) UpdateEvaluation(
	ctx context.Context,
	id string,
	mutate ports.EvaluationMutator,
) (*models.Evaluation, error) {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin update: %w", ports.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, err := scanEvaluation(tx.QueryRow(ctx,
		`SELECT `+evaluationColumns+` FROM evaluation WHERE id = $1 FOR UPDATE`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("evaluation %s: %w", id, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: load evaluation: %w", ports.ErrStorage, err)
	}

	if err := mutate(e); err != nil {
		return nil, err
	}

	query := `
		UPDATE evaluation
		SET beauty = $1, boring = $2, depressing = $3, lively = $4, wealthy = $5, safe = $6, comment = $7
		WHERE id = $8
	`
	if _, err := tx.Exec(ctx, query,
		e.Beauty, e.Boring, e.Depressing, e.Lively, e.Wealthy, e.Safe, e.Comment, id,
	); err != nil {
		return nil, fmt.Errorf("%w: update evaluation: %w", ports.ErrStorage, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit update: %w", ports.ErrStorage, err)
	}
	return e, nil
}

func (r *PostgresEvaluationRepo) list(ctx context.Context, query string, args ...any) ([]models.Evaluation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list evaluations: %w", ports.ErrStorage, err)
	}
	defer rows.Close()

	var out []models.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan evaluation: %w", ports.ErrStorage, err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list evaluations: %w", ports.ErrStorage, err)
	}
	return out, nil
}

func (r *PostgresEvaluationRepo) ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error) {
	return r.list(ctx,
		`SELECT `+evaluationColumns+` FROM evaluation WHERE evaluator_id = $1 ORDER BY created_at DESC, id DESC`,
		evaluatorID,
	)
}

func (r *PostgresEvaluationRepo) ListAll(ctx context.Context) ([]models.Evaluation, error) {
	return r.list(ctx, `SELECT `+evaluationColumns+` FROM evaluation ORDER BY created_at DESC, id DESC`)
}

func (r *PostgresEvaluationRepo) RatedMediaIDs(ctx context.Context, evaluatorID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT media_id FROM evaluation WHERE evaluator_id = $1`,
		evaluatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: rated media ids: %w", ports.ErrStorage, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: rated media ids: %w", ports.ErrStorage, err)
	}
	return ids, nil
}
