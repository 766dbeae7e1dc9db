package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds JSON payloads; the largest valid task is well below it.
const maxBodyBytes = 64 << 10

func readObject(c *gin.Context) (validation.Object, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, common.ErrMalformedBody
	}
	return validation.ParseObject(c.GetHeader("Content-Type"), body)
}

// pathID parses the :id segment. Anything that is not an integer is
// treated as an id nobody owns.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

func (h *Handler) dashboardPage(c *gin.Context) {
	id := GetIdentity(c)

	list, err := h.tasks.List(c.Request.Context(), *id)
	if err != nil {
		h.log.Error(c.Request.Context(), "dashboard failed", "account_id", id.AccountID, "error", err)
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Username": id.Username,
			"Error":    "Your tasks could not be loaded.",
		})
		return
	}

	views := make([]taskView, 0, len(list))
	for _, t := range list {
		views = append(views, newTaskView(t))
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username": id.Username,
		"Flash":    h.popFlash(c),
		"Tasks":    views,
	})
}

func (h *Handler) listTasks(c *gin.Context) {
	list, err := h.tasks.List(c.Request.Context(), *GetIdentity(c))
	if err != nil {
		h.respondTaskError(c, err, "")
		return
	}

	views := make([]taskView, 0, len(list))
	for _, t := range list {
		views = append(views, newTaskView(t))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) createTask(c *gin.Context) {
	obj, err := readObject(c)
	if err != nil {
		h.respondTaskError(c, err, "")
		return
	}
	in, err := validation.NewTask(obj)
	if err != nil {
		h.respondTaskError(c, err, "")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), *GetIdentity(c), in)
	if err != nil {
		h.respondTaskError(c, err, "")
		return
	}

	h.metrics.TaskMutations.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "Task added!", "task_id": task.ID})
}

func (h *Handler) editTask(c *gin.Context) {
	const notFound = "Task not found or does not belong to current user"

	obj, err := readObject(c)
	if err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}
	in, err := validation.TaskEdit(obj)
	if err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}

	if err := h.tasks.Edit(c.Request.Context(), *GetIdentity(c), in); err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}

	h.metrics.TaskMutations.WithLabelValues("edit").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Task updated!"})
}

func (h *Handler) deleteTask(c *gin.Context) {
	const notFound = "Task not found!"

	taskID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), *GetIdentity(c), taskID); err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}

	h.metrics.TaskMutations.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted!"})
}

func (h *Handler) setDone(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("The Task with the ID: %s doesn't exist!", c.Param("id"))})
		return
	}
	notFound := fmt.Sprintf("The Task with the ID: %d doesn't exist!", taskID)

	obj, err := readObject(c)
	if err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}
	done, err := validation.DoneFlag(obj)
	if err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}

	if err := h.tasks.SetDone(c.Request.Context(), *GetIdentity(c), taskID, done); err != nil {
		h.respondTaskError(c, err, notFound)
		return
	}

	h.metrics.TaskMutations.WithLabelValues("done").Inc()
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Task done set as %t!", done)})
}

func (h *Handler) countTasks(c *gin.Context) {
	stats, err := h.tasks.Count(c.Request.Context(), *GetIdentity(c))
	if err != nil {
		h.respondTaskError(c, err, "There are no Task entries under the current user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": stats.Count, "latest_id": stats.LatestID})
}
