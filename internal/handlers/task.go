package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitecrew/sitecrew-api/internal/dto"
	apierrors "github.com/sitecrew/sitecrew-api/internal/errors"
	"github.com/sitecrew/sitecrew-api/internal/middleware"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/services"
	"github.com/sitecrew/sitecrew-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks accessible by the current user
// Can filter by organization_id, project_id, status, assigned_to_me and due_today
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListTasksInput{
		UserID:        userID,
		AssignedToMe:  c.Query("assigned_to_me") == "true",
		DueToday:      c.Query("due_today") == "true",
		SortByDueDate: c.Query("sort") == "due_date",
	}

	if orgIDStr := c.Query("organization_id"); orgIDStr != "" {
		orgID, err := strconv.ParseUint(orgIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid organization_id")
			return
		}
		input.OrganizationID = &orgID
	}

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &projectID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID
// Task is already loaded with relations by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title          string     `json:"title" binding:"required"`
		Description    string     `json:"description"`
		DueDate        *time.Time `json:"due_date"`
		ProjectID      *uint64    `json:"project_id"`
		OrganizationID uint64     `json:"organization_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		ProjectID:      req.ProjectID,
		OrganizationID: req.OrganizationID,
		CreatorID:      userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if title, ok := rawReq["title"]; ok {
		if titleStr, ok := title.(string); ok {
			input.Title = &titleStr
		}
	}
	if description, ok := rawReq["description"]; ok {
		if descStr, ok := description.(string); ok {
			input.Description = &descStr
		}
	}
	if status, ok := rawReq["status"]; ok {
		if statusStr, ok := status.(string); ok {
			taskStatus := models.TaskStatus(statusStr)
			input.Status = &taskStatus
		}
	}
	if _, ok := rawReq["due_date"]; ok {
		// due_date was provided (might be null)
		if rawReq["due_date"] == nil {
			input.ClearDueDate = true
		} else if dueDateStr, ok := rawReq["due_date"].(string); ok {
			parsedTime, err := time.Parse(time.RFC3339, dueDateStr)
			if err == nil {
				input.DueDate = &parsedTime
			}
		}
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	if err := h.taskService.DeleteTask(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AssignTask assigns users to a task
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	type AssignUserRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.taskService.AssignUsers(services.AssignUsersInput{
		TaskID:  task.ID,
		ActorID: userID,
		UserIDs: req.UserIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	updated, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Users assigned successfully",
		"assignments": dto.ToTaskDTO(*updated).Assignments,
	})
}

// UnassignTask removes user assignments from a task
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	type UnassignUserRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req UnassignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.UnassignUsers(task.ID, userID, req.UserIDs); err != nil {
		respondTaskError(c, err)
		return
	}

	updated, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Users unassigned successfully",
		"assignments": dto.ToTaskDTO(*updated).Assignments,
	})
}

// ToggleTaskStatus flips a task between todo and done
func (h *TaskHandler) ToggleTaskStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	updated, err := h.taskService.ToggleTaskStatus(task.ID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotOrganizationMember):
		apierrors.Forbidden(c, "You are not a member of this organization")
	case errors.Is(err, services.ErrNotTaskCreator),
		errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrInvalidTaskAssignee):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
