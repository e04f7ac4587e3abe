package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type TaskHandler struct {
	tasks service.TaskService
}

func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create task")
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), tenantID(c), taskID)
	if err != nil {
		respondError(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), tenantID(c), q.IncludeCompleted, q.Page())
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": emptyIfNil(tasks)})
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), tenantID(c), taskID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// Complete marks the task done; {"completed": false} reopens it.
func (h *TaskHandler) Complete(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CompleteTaskRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	completed := req.Completed == nil || *req.Completed

	task, err := h.tasks.SetCompleted(c.Request.Context(), tenantID(c), taskID, completed)
	if err != nil {
		respondError(c, err, "failed to complete task")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), tenantID(c), taskID); err != nil {
		respondError(c, err, "failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}
