package handlers

import (
	"errors"
	"net/http"

	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errTodoNotFound  = "todo not found"
	errRequestFailed = "request failed"
)

// Request DTO for creating a todo.
type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// Request DTO for patching a todo. Pointers distinguish "absent" from zero.
type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// todoError translates service errors into the designed status codes:
// 404 for not-found/not-owned, 400 for everything else.
func (h *Handler) todoError(c *gin.Context, err error, logKey string) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
	case errors.Is(err, service.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errRequestFailed})
	}
}

// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body  createTodoRequest  true  "Todo payload"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /todos [post]
// @Security     XAuth
func (h *Handler) createTodo(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	var input createTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	todo, err := h.services.Todos.Create(c.Request.Context(), user.ID, input.Text)
	if err != nil {
		h.todoError(c, err, "todo_create_failed")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Success      200  {object}  map[string][]models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /todos [get]
// @Security     XAuth
func (h *Handler) listTodos(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	todos, err := h.services.Todos.List(c.Request.Context(), user.ID)
	if err != nil {
		h.todoError(c, err, "todo_list_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// @Summary      Get one todo by id
// @Tags         todos
// @Produce      json
// @Param        id  path  string  true  "Todo id"
// @Success      200  {object}  map[string]models.Todo
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [get]
// @Security     XAuth
func (h *Handler) getTodo(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	todo, err := h.services.Todos.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.todoError(c, err, "todo_get_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// @Summary      Update one todo by id
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Todo id"
// @Param        body  body  updateTodoRequest  true  "Patch payload"
// @Success      200  {object}  map[string]models.Todo
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [patch]
// @Security     XAuth
func (h *Handler) updateTodo(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	var input updateTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	patch := service.TodoPatch{Text: input.Text, Completed: input.Completed}
	todo, err := h.services.Todos.Update(c.Request.Context(), user.ID, c.Param("id"), patch)
	if err != nil {
		h.todoError(c, err, "todo_update_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// @Summary      Delete one todo by id
// @Tags         todos
// @Produce      json
// @Param        id  path  string  true  "Todo id"
// @Success      200  {object}  map[string]models.Todo
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
// @Security     XAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	todo, err := h.services.Todos.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.todoError(c, err, "todo_delete_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}
