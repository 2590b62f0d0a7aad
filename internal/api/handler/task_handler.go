package handler

import (
	"encoding/json"
	"net/http"

	"taskhub/internal/api/middleware"
	"taskhub/internal/app/service"
	"taskhub/internal/common"
	"taskhub/internal/common/pagination"
	"taskhub/internal/platform/logging"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(ts *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Get("/dashboard", h.dashboard) // GET /api/tasks/dashboard
	})

	r.Get("/{id}", h.listByUser)    // GET /api/tasks/{userID}
	r.Post("/create", h.create)     // POST /api/tasks/create
	r.Patch("/{id}", h.update)      // PATCH /api/tasks/{taskID}
	r.Delete("/{id}", h.deleteTask) // DELETE /api/tasks/{taskID}
}

// dashboard lists every user's tasks, admin only.
func (h *TaskHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	tasks, total, err := h.taskService.ListAllTasks(r.Context(), params)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to list all tasks")
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK,
		common.NewPaginatedResponse(tasks, len(tasks), params.Page, params.Limit, total))
}

// listByUser lists one user's tasks; {id} is a user id, self-or-admin.
func (h *TaskHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	targetUserID := chi.URLParam(r, "id")
	params := pagination.FromQuery(r.URL.Query())

	tasks, total, err := h.taskService.ListUserTasks(r.Context(), callerID, callerRole, targetUserID, params)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	logging.Log.WithFields(map[string]interface{}{
		"userId":    targetUserID,
		"callerId":  callerID,
		"page":      params.Page,
		"limit":     params.Limit,
		"taskCount": len(tasks),
		"total":     total,
		"status":    params.Status,
		"search":    params.Search,
	}).Info("Tasks retrieved with pagination")

	common.RespondWithJSON(w, http.StatusOK,
		common.NewPaginatedResponse(tasks, len(tasks), params.Page, params.Limit, total))
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), callerID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, common.MutationResponse{
		Success: true,
		Message: "Task created successfully",
		Data:    task,
	})
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	var req service.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), callerID, callerRole, chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, common.MutationResponse{
		Success: true,
		Message: "Task updated successfully",
		Data:    task,
	})
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	if err := h.taskService.DeleteTask(r.Context(), callerID, callerRole, chi.URLParam(r, "id")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, common.MutationResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}
