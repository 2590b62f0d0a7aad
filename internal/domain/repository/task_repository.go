package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskhub/internal/common"
	"taskhub/internal/domain/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.Task, int, error)
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

func (r *pgTaskRepository) Create(ctx context.Context, t *model.Task) error {
	query := `INSERT INTO tasks (id, title, description, due_date, status, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Title, t.Description, t.DueDate, t.Status, t.OwnerID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	query := `
        SELECT t.id, t.title, t.description, t.due_date, t.status, t.user_id,
               u.id, u.name, u.email, u.role,
               t.created_at, t.updated_at
        FROM tasks t
        JOIN users u ON t.user_id = u.id
        WHERE t.id = $1`

	task := &model.Task{Owner: &model.UserSummary{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.DueDate, &task.Status, &task.OwnerID,
		&task.Owner.ID, &task.Owner.Name, &task.Owner.Email, &task.Owner.Role,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.FindByID: %w", err)
	}
	return task, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, t *model.Task) error {
	query := `UPDATE tasks SET
                title = $1, description = $2, due_date = $3, status = $4,
                updated_at = CURRENT_TIMESTAMP
              WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, t.Title, t.Description, t.DueDate, t.Status, t.ID)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Update rows: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete rows: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so the search term matches
// literally instead of as a pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// List returns one page of tasks matching the filter plus the total match
// count, newest first. Requires dynamic query building for the optional
// owner/status/search conditions.
func (r *pgTaskRepository) List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.Task, int, error) {
	var baseQuery strings.Builder
	baseQuery.WriteString(`
        SELECT t.id, t.title, t.description, t.due_date, t.status, t.user_id,
               u.id, u.name, u.email, u.role,
               t.created_at, t.updated_at
        FROM tasks t
        JOIN users u ON t.user_id = u.id`)

	var countQuery strings.Builder
	countQuery.WriteString(`SELECT COUNT(t.id) FROM tasks t`)

	var conditions []string
	var args []interface{}

	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("t.user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("LOWER(t.status) = LOWER($%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(t.title ILIKE $%d OR t.description ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery.String()+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgTaskRepository.List count: %w", err)
	}

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)
	pageClause := fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", limitPos, offsetPos)

	rows, err := r.db.QueryContext(ctx, baseQuery.String()+whereClause+pageClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgTaskRepository.List: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task := model.Task{Owner: &model.UserSummary{}}
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.DueDate, &task.Status, &task.OwnerID,
			&task.Owner.ID, &task.Owner.Name, &task.Owner.Email, &task.Owner.Role,
			&task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("pgTaskRepository.List scan: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgTaskRepository.List rows.Err: %w", err)
	}
	return tasks, total, nil
}
