package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type JobHandler struct {
	jobs service.JobService
}

func NewJobHandler(jobs service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), tenantID(c), jobID)
	if err != nil {
		respondError(c, err, "failed to get job")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	jobs, err := h.jobs.List(c.Request.Context(), tenantID(c), q.Status, q.Page())
	if err != nil {
		respondError(c, err, "failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": emptyIfNil(jobs)})
}

func (h *JobHandler) Update(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), tenantID(c), jobID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), tenantID(c), jobID); err != nil {
		respondError(c, err, "failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}
