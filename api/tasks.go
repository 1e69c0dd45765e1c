package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/models"
	"task-manager/store"
)

// GET /api/tasks
func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.store.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error fetching tasks", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, models.Envelope{Success: true, Data: tasks})
}

// POST /api/tasks
func (h *Handler) createTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCreateShape(doc); err != nil {
		h.fail(c, http.StatusBadRequest, models.ErrTitleRequired.Error())
		return
	}

	fields, _ := doc.(map[string]any)
	raw, _ := fields["title"].(string)
	title, err := models.NormalizeTitle(raw)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.store.Create(c.Request.Context(), title)
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		h.fail(c, http.StatusBadRequest, verr.Error())
		return
	case err != nil:
		h.serverError(c, "Error creating task", err)
		return
	}

	h.log.Debug("task created", "id", task.ID)
	c.JSON(http.StatusCreated, models.Envelope{
		Success: true,
		Data:    task,
		Message: "Task created successfully",
	})
}

// DELETE /api/tasks/:id
func (h *Handler) deleteTask(c *gin.Context) {
	id := c.Param("id")
	if !h.store.ValidID(id) {
		h.fail(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := h.store.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(c, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		h.serverError(c, "Error deleting task", err)
		return
	}

	h.log.Debug("task deleted", "id", task.ID)
	c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Data:    task,
		Message: "Task deleted successfully",
	})
}

// GET /api/working
func (h *Handler) working(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is working"})
}

func (h *Handler) fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.Envelope{Success: false, Message: message})
}

// serverError logs err and answers 500 with a generic message plus the error
// text for diagnostics.
func (h *Handler) serverError(c *gin.Context, message string, err error) {
	h.log.Error(message, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, models.Envelope{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
