package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// todoServiceFixtures holds all test dependencies for todo service tests.
type todoServiceFixtures struct {
	service usecase.TodoUsecase
	store   *fakeStore
}

func createTestTodoService(t *testing.T) todoServiceFixtures {
	t.Helper()

	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewTodoService(TodoServiceParams{
		TxManager:     &fakeTxManager{store: store},
		TodoRepo:      &fakeTodoRepo{store: store},
		OwnershipRepo: &fakeOwnershipRepo{store: store},
		Logger:        logger,
	})

	return todoServiceFixtures{
		service: service,
		store:   store,
	}
}

func createTodo(t *testing.T, fx todoServiceFixtures, userID uuid.UUID, description string) uuid.UUID {
	t.Helper()

	output, err := fx.service.CreateTodo(context.Background(), userID, &usecase.CreateTodoInput{
		Description: description,
	})
	require.NoError(t, err)

	return output.Todo.ID
}

func listDescriptions(t *testing.T, fx todoServiceFixtures, userID uuid.UUID) []string {
	t.Helper()

	output, err := fx.service.ListTodos(context.Background(), userID)
	require.NoError(t, err)

	descriptions := make([]string, 0, len(output.Todos))
	for _, todo := range output.Todos {
		descriptions = append(descriptions, todo.Description)
	}

	return descriptions
}

func TestTodoService_CreateTodo_Success(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()

	output, err := fx.service.CreateTodo(context.Background(), userID, &usecase.CreateTodoInput{
		Description: "buy milk",
	})

	require.NoError(t, err)
	assert.Equal(t, "buy milk", output.Todo.Description)
	assert.False(t, output.Todo.Completed)
	assert.NotEqual(t, uuid.Nil, output.Todo.ID)
	assert.Equal(t, userID, fx.store.owners[output.Todo.ID])
}

func TestTodoService_CreateTodo_AppendsToEnd(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()

	createTodo(t, fx, userID, "first")
	createTodo(t, fx, userID, "second")
	createTodo(t, fx, userID, "third")

	assert.Equal(t, []string{"first", "second", "third"}, listDescriptions(t, fx, userID))
}

func TestTodoService_CreateTodo_EmptyDescription(t *testing.T) {
	fx := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, description := range []string{"", "   ", "\t\n"} {
		_, err := fx.service.CreateTodo(ctx, userID, &usecase.CreateTodoInput{Description: description})
		assert.ErrorIs(t, err, domainerrors.ErrEmptyDescription)
	}

	assert.Empty(t, listDescriptions(t, fx, userID))
}

func TestTodoService_ListTodos_EmptyForNewUser(t *testing.T) {
	fx := createTestTodoService(t)

	output, err := fx.service.ListTodos(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, output.Todos)
}

func TestTodoService_ListTodos_IsolatedPerUser(t *testing.T) {
	fx := createTestTodoService(t)
	alice := uuid.New()
	bob := uuid.New()

	createTodo(t, fx, alice, "alice todo")
	createTodo(t, fx, bob, "bob todo")

	assert.Equal(t, []string{"alice todo"}, listDescriptions(t, fx, alice))
	assert.Equal(t, []string{"bob todo"}, listDescriptions(t, fx, bob))
}

func TestTodoService_ListTodos_OrphanedTodoInvisible(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()

	todoID := createTodo(t, fx, userID, "soon orphaned")

	// Sever the ownership link directly. The row survives but no request
	// can reach it anymore.
	delete(fx.store.owners, todoID)

	assert.Empty(t, listDescriptions(t, fx, userID))

	err := fx.service.UpdateTodo(context.Background(), userID, todoID, &usecase.UpdateTodoInput{
		Completed: boolPtr(true),
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)
}

func TestTodoService_GetTodo_Success(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()

	todoID := createTodo(t, fx, userID, "buy milk")

	output, err := fx.service.GetTodo(context.Background(), userID, todoID)
	require.NoError(t, err)
	assert.Equal(t, todoID, output.Todo.ID)
	assert.Equal(t, "buy milk", output.Todo.Description)
	assert.False(t, output.Todo.Completed)
}

func TestTodoService_GetTodo_NotOwner(t *testing.T) {
	fx := createTestTodoService(t)
	ownerID := uuid.New()
	intruderID := uuid.New()

	todoID := createTodo(t, fx, ownerID, "private")

	_, err := fx.service.GetTodo(context.Background(), intruderID, todoID)
	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)
}

func TestTodoService_GetTodo_NonexistentTodoSameError(t *testing.T) {
	fx := createTestTodoService(t)

	_, err := fx.service.GetTodo(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)
}

func TestTodoService_UpdateTodo_PartialFields(t *testing.T) {
	fx := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()
	todoID := createTodo(t, fx, userID, "buy milk")

	// Complete without touching the description.
	err := fx.service.UpdateTodo(ctx, userID, todoID, &usecase.UpdateTodoInput{Completed: boolPtr(true)})
	require.NoError(t, err)

	stored := fx.store.todos[todoID]
	assert.True(t, stored.Completed)
	assert.Equal(t, "buy milk", stored.Description)

	// Rename without touching the completed flag.
	err = fx.service.UpdateTodo(ctx, userID, todoID, &usecase.UpdateTodoInput{Description: strPtr("buy oat milk")})
	require.NoError(t, err)

	stored = fx.store.todos[todoID]
	assert.True(t, stored.Completed)
	assert.Equal(t, "buy oat milk", stored.Description)
}

func TestTodoService_UpdateTodo_NoFieldsIsNoop(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()
	todoID := createTodo(t, fx, userID, "unchanged")

	err := fx.service.UpdateTodo(context.Background(), userID, todoID, &usecase.UpdateTodoInput{})

	require.NoError(t, err)
	assert.Equal(t, "unchanged", fx.store.todos[todoID].Description)
	assert.False(t, fx.store.todos[todoID].Completed)
}

func TestTodoService_UpdateTodo_EmptyDescriptionRejected(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()
	todoID := createTodo(t, fx, userID, "keep me")

	err := fx.service.UpdateTodo(context.Background(), userID, todoID, &usecase.UpdateTodoInput{
		Description: strPtr("   "),
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmptyDescription)
	assert.Equal(t, "keep me", fx.store.todos[todoID].Description)
}

func TestTodoService_UpdateTodo_NotOwner(t *testing.T) {
	fx := createTestTodoService(t)
	alice := uuid.New()
	bob := uuid.New()
	todoID := createTodo(t, fx, alice, "alice's todo")

	err := fx.service.UpdateTodo(context.Background(), bob, todoID, &usecase.UpdateTodoInput{
		Completed: boolPtr(true),
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)
	assert.False(t, fx.store.todos[todoID].Completed)
}

func TestTodoService_UpdateTodo_NonexistentTodoSameError(t *testing.T) {
	fx := createTestTodoService(t)

	// A missing todo and someone else's todo must be indistinguishable.
	err := fx.service.UpdateTodo(context.Background(), uuid.New(), uuid.New(), &usecase.UpdateTodoInput{
		Completed: boolPtr(true),
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)
}

func TestTodoService_DeleteTodo_Success(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()
	todoID := createTodo(t, fx, userID, "delete me")

	err := fx.service.DeleteTodo(context.Background(), userID, todoID)

	require.NoError(t, err)
	assert.Empty(t, listDescriptions(t, fx, userID))
	assert.NotContains(t, fx.store.todos, todoID)
	assert.NotContains(t, fx.store.owners, todoID)
}

func TestTodoService_DeleteTodo_NotOwner(t *testing.T) {
	fx := createTestTodoService(t)
	alice := uuid.New()
	bob := uuid.New()
	todoID := createTodo(t, fx, alice, "alice's todo")

	err := fx.service.DeleteTodo(context.Background(), bob, todoID)

	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)
	assert.Contains(t, fx.store.todos, todoID)
}

func TestTodoService_ReorderTodos_Success(t *testing.T) {
	fx := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()

	first := createTodo(t, fx, userID, "first")
	second := createTodo(t, fx, userID, "second")
	third := createTodo(t, fx, userID, "third")

	err := fx.service.ReorderTodos(ctx, userID, &usecase.ReorderTodosInput{
		Todos: []usecase.ReorderItem{{TodoID: third}, {TodoID: first}, {TodoID: second}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"third", "first", "second"}, listDescriptions(t, fx, userID))
	assert.Equal(t, 0, fx.store.todos[third].Position)
	assert.Equal(t, 1, fx.store.todos[first].Position)
	assert.Equal(t, 2, fx.store.todos[second].Position)
}

func TestTodoService_ReorderTodos_EmptyBatchIsNoop(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()
	createTodo(t, fx, userID, "only")

	err := fx.service.ReorderTodos(context.Background(), userID, &usecase.ReorderTodosInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, listDescriptions(t, fx, userID))
}

func TestTodoService_ReorderTodos_RejectsUnownedID(t *testing.T) {
	fx := createTestTodoService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	aliceFirst := createTodo(t, fx, alice, "alice first")
	aliceSecond := createTodo(t, fx, alice, "alice second")
	bobTodo := createTodo(t, fx, bob, "bob's todo")

	err := fx.service.ReorderTodos(ctx, alice, &usecase.ReorderTodosInput{
		Todos: []usecase.ReorderItem{{TodoID: bobTodo}, {TodoID: aliceSecond}, {TodoID: aliceFirst}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotTodoOwner)

	// No position was touched, not even for the caller's own todos.
	assert.Equal(t, []string{"alice first", "alice second"}, listDescriptions(t, fx, alice))
	assert.Equal(t, 0, fx.store.todos[bobTodo].Position)
}

func TestTodoService_ReorderTodos_RejectsDuplicateID(t *testing.T) {
	fx := createTestTodoService(t)
	userID := uuid.New()
	todoID := createTodo(t, fx, userID, "only")

	err := fx.service.ReorderTodos(context.Background(), userID, &usecase.ReorderTodosInput{
		Todos: []usecase.ReorderItem{{TodoID: todoID}, {TodoID: todoID}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestTodoService_ReorderTodos_RollsBackOnPartialFailure(t *testing.T) {
	fx := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()

	first := createTodo(t, fx, userID, "first")
	second := createTodo(t, fx, userID, "second")
	third := createTodo(t, fx, userID, "third")

	// The third write fails after the first two succeed; the transaction
	// must leave every position as it was.
	fx.store.failSetPosition[second] = true

	err := fx.service.ReorderTodos(ctx, userID, &usecase.ReorderTodosInput{
		Todos: []usecase.ReorderItem{{TodoID: third}, {TodoID: first}, {TodoID: second}},
	})

	require.Error(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, listDescriptions(t, fx, userID))
	assert.Equal(t, 0, fx.store.todos[first].Position)
	assert.Equal(t, 1, fx.store.todos[second].Position)
	assert.Equal(t, 2, fx.store.todos[third].Position)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
