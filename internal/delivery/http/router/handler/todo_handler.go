package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/delivery/http/response"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TodoHandler holds dependencies for todo-related handlers.
type TodoHandler struct {
	uc     usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateTodoRequest is the wire format for creating a todo. Emptiness is
// checked in the usecase so whitespace-only descriptions fail the same way.
type CreateTodoRequest struct {
	Description string `json:"description"`
}

// UpdateTodoRequest is the wire format for a partial todo update.
type UpdateTodoRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ReorderTodoItem identifies one todo in a reorder batch. Its index in the
// batch becomes the todo's new position.
type ReorderTodoItem struct {
	TodoID uuid.UUID `json:"todoId"`
}

// ReorderTodosRequest is the wire format for rewriting the list order.
type ReorderTodosRequest struct {
	Todos []ReorderTodoItem `json:"todos" validate:"required"`
}

// todoView is the wire representation of a todo.
type todoView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

func toTodoView(todo *entity.Todo) todoView {
	return todoView{
		ID:          todo.ID,
		Description: todo.Description,
		Completed:   todo.Completed,
	}
}

// Create handles the todo creation request.
func (h *TodoHandler) Create(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenNotValid)
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}

	output, err := h.uc.CreateTodo(c.Request().Context(), userID, &usecase.CreateTodoInput{
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toTodoView(output.Todo), "Todo created successfully")
}

// Get returns a single one of the user's todos.
func (h *TodoHandler) Get(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenNotValid)
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(domainerrors.ErrInvalidInput)
	}

	output, err := h.uc.GetTodo(c.Request().Context(), userID, todoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoView(output.Todo), "Todo retrieved successfully")
}

// List returns the authenticated user's todos in display order.
func (h *TodoHandler) List(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenNotValid)
	}

	output, err := h.uc.ListTodos(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	todos := make([]todoView, 0, len(output.Todos))
	for _, todo := range output.Todos {
		todos = append(todos, toTodoView(todo))
	}

	return response.Success(c, http.StatusOK, todos, "Todos retrieved successfully")
}

// Update applies a partial update to one of the user's todos.
func (h *TodoHandler) Update(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenNotValid)
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(domainerrors.ErrInvalidInput)
	}

	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}

	err = h.uc.UpdateTodo(c.Request().Context(), userID, todoID, &usecase.UpdateTodoInput{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Todo updated successfully")
}

// Delete removes one of the user's todos.
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenNotValid)
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(domainerrors.ErrInvalidInput)
	}

	if err := h.uc.DeleteTodo(c.Request().Context(), userID, todoID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Todo deleted successfully")
}

// Reorder rewrites the order of the user's whole list in one batch.
func (h *TodoHandler) Reorder(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrTokenNotValid)
	}

	var req ReorderTodosRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Todos list is required")
	}

	items := make([]usecase.ReorderItem, 0, len(req.Todos))
	for _, item := range req.Todos {
		items = append(items, usecase.ReorderItem{TodoID: item.TodoID})
	}

	err := h.uc.ReorderTodos(c.Request().Context(), userID, &usecase.ReorderTodosInput{
		Todos: items,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Todos reordered successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
