package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhub/internal/common"
	"taskhub/internal/common/pagination"
	"taskhub/internal/common/validation"
	"taskhub/internal/domain/model"
	"taskhub/internal/domain/repository"
	"taskhub/internal/platform/logging"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required,max=100"`
	Description string    `json:"description" validate:"required,max=1000"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,taskstatus"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,min=1,max=1000"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status" validate:"omitempty,taskstatus"`
}

// ListUserTasks returns a page of one user's tasks. Callers may only list
// their own tasks unless they are admin.
func (s *TaskService) ListUserTasks(ctx context.Context, callerID, callerRole, targetUserID string, p pagination.Params) ([]model.Task, int, error) {
	if targetUserID != callerID && callerRole != model.RoleAdmin {
		logging.Log.WithFields(map[string]interface{}{
			"requestedUserId": targetUserID,
			"callerId":        callerID,
			"role":            callerRole,
		}).Warn("Unauthorized task access attempt")
		return nil, 0, common.WithMessage(common.ErrForbidden, "Forbidden - You can only view your own tasks")
	}

	filter := model.TaskFilter{OwnerID: targetUserID, Status: p.Status, Search: p.Search}
	tasks, total, err := s.taskRepo.List(ctx, filter, p.Limit, p.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListAllTasks returns a page of every user's tasks. Role gating happens
// in the router; this method applies no owner scope.
func (s *TaskService) ListAllTasks(ctx context.Context, p pagination.Params) ([]model.Task, int, error) {
	filter := model.TaskFilter{Status: p.Status, Search: p.Search}
	tasks, total, err := s.taskRepo.List(ctx, filter, p.Limit, p.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list all tasks: %w", err)
	}
	return tasks, total, nil
}

// CreateTask persists a task owned by the caller. The owner is always the
// authenticated caller, never taken from the body.
func (s *TaskService) CreateTask(ctx context.Context, callerID string, req CreateTaskRequest) (*model.Task, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.TaskStatusPending
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		OwnerID:     callerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logging.Log.WithFields(map[string]interface{}{
		"taskId": task.ID,
		"userId": callerID,
		"title":  task.Title,
	}).Info("Task created")

	// Re-read to pick up the joined owner summary.
	created, err := s.taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created task: %w", err)
	}
	return created, nil
}

// UpdateTask applies a partial update. Missing task resolves to 404 before
// the ownership check so "doesn't exist" and "forbidden" stay distinct.
func (s *TaskService) UpdateTask(ctx context.Context, callerID, callerRole, taskID string, req UpdateTaskRequest) (*model.Task, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.WithMessage(common.ErrNotFound, "Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !canModify(task, callerID, callerRole) {
		logging.Log.WithFields(map[string]interface{}{
			"taskId":      taskID,
			"callerId":    callerID,
			"taskOwnerId": task.OwnerID,
		}).Warn("Unauthorized task update attempt")
		return nil, common.WithMessage(common.ErrForbidden, "Forbidden - You don't have access to update this task")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	logging.Log.WithFields(map[string]interface{}{
		"taskId":   taskID,
		"callerId": callerID,
	}).Info("Task updated")

	updated, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a task after the ownership check. Deleting an already
// deleted id yields 404.
func (s *TaskService) DeleteTask(ctx context.Context, callerID, callerRole, taskID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.WithMessage(common.ErrNotFound, "Task not found")
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !canModify(task, callerID, callerRole) {
		logging.Log.WithFields(map[string]interface{}{
			"taskId":      taskID,
			"callerId":    callerID,
			"taskOwnerId": task.OwnerID,
		}).Warn("Unauthorized task deletion attempt")
		return common.WithMessage(common.ErrForbidden, "Forbidden - You don't have access to delete this task")
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.WithMessage(common.ErrNotFound, "Task not found")
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logging.Log.WithFields(map[string]interface{}{
		"taskId":   taskID,
		"callerId": callerID,
		"title":    task.Title,
	}).Info("Task deleted")
	return nil
}

func canModify(task *model.Task, callerID, callerRole string) bool {
	return task.OwnerID == callerID || callerRole == model.RoleAdmin
}
