package repositories

import (
	"context"
	"database/sql"
	"errors"

	"taskway/internal/models"
)

type SubtaskRepository interface {
	Store(ctx context.Context, userID string, sub *models.Subtask) error
	ListByTask(ctx context.Context, userID, taskID string) ([]models.Subtask, error)
	Update(ctx context.Context, userID string, sub *models.Subtask) error
	Delete(ctx context.Context, userID, id string) error
}

type subtaskRepository struct {
	db *sql.DB
}

func NewSubtaskRepository(db *sql.DB) SubtaskRepository {
	return &subtaskRepository{db: db}
}

// Every statement joins back to tasks so subtasks are only reachable through
// the parent task's owner.
func (r *subtaskRepository) Store(ctx context.Context, userID string, sub *models.Subtask) error {
	query := `
		INSERT INTO subtasks (id, task_id, title, completed, position, created_at, updated_at)
		SELECT $1, t.id, $3, $4, $5, $6, $7 FROM tasks t WHERE t.id = $2 AND t.user_id = $8
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.TaskID, sub.Title, sub.Completed, sub.Position,
		sub.CreatedAt, sub.UpdatedAt, userID,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *subtaskRepository) ListByTask(ctx context.Context, userID, taskID string) ([]models.Subtask, error) {
	q := `
SELECT s.id, s.task_id, s.title, s.completed, s.position, s.created_at, s.updated_at
FROM subtasks s
JOIN tasks t ON t.id = s.task_id
WHERE s.task_id = $1 AND t.user_id = $2
ORDER BY s.position ASC`
	rows, err := r.db.QueryContext(ctx, q, taskID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subtask
	for rows.Next() {
		var s models.Subtask
		if err := rows.Scan(&s.ID, &s.TaskID, &s.Title, &s.Completed, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *subtaskRepository) Update(ctx context.Context, userID string, sub *models.Subtask) error {
	q := `
UPDATE subtasks s SET title=$1, completed=$2, updated_at=$3
FROM tasks t
WHERE s.id = $4 AND t.id = s.task_id AND t.user_id = $5`
	res, err := r.db.ExecContext(ctx, q, sub.Title, sub.Completed, sub.UpdatedAt, sub.ID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subtaskRepository) Delete(ctx context.Context, userID, id string) error {
	q := `
DELETE FROM subtasks s
USING tasks t
WHERE s.id = $1 AND t.id = s.task_id AND t.user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
