package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/dbx"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (account_id, name, description, done, last_modified)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.AccountID, task.Name, task.Description, task.Done, task.LastModified).Scan(&task.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("owner %d: %w", task.AccountID, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, accountID int64) ([]models.Task, error) {
	query :=
		`SELECT id, account_id, name, description, done, last_modified FROM tasks
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Name, &t.Description, &t.Done, &t.LastModified); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, accountID, id int64) (*models.Task, error) {
	query :=
		`SELECT id, account_id, name, description, done, last_modified FROM tasks
		 WHERE id = $1 AND account_id = $2
		 FOR UPDATE
		 `

	t := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).
		Scan(&t.ID, &t.AccountID, &t.Name, &t.Description, &t.Done, &t.LastModified)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query :=
		`UPDATE tasks
		 SET name = $1, description = $2, done = $3, last_modified = $4
		 WHERE id = $5 AND account_id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		task.Name, task.Description, task.Done, task.LastModified, task.ID, task.AccountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID, id int64) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND account_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) Stats(ctx context.Context, accountID int64) (models.TaskStats, error) {
	query :=
		`SELECT COUNT(*), COALESCE(MAX(id), 0) FROM tasks
		 WHERE account_id = $1
		 `

	var s models.TaskStats
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&s.Count, &s.LatestID); err != nil {
		return models.TaskStats{}, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
