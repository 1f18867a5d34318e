package impl

import (
	"context"
	"sort"
	"sync"
	"time"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// fakeStore is a shared in-memory database for the fake repositories. A
// single store backs every repository in a test so transactional rollback
// can be simulated by snapshotting and restoring the maps.
type fakeStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*entity.User
	todos  map[uuid.UUID]*entity.Todo
	owners map[uuid.UUID]uuid.UUID // todoID -> userID

	// failSetPosition forces SetPosition to fail for the given todo ID,
	// used to exercise rollback of partially applied batches.
	failSetPosition map[uuid.UUID]bool

	// failUserCreate forces user Create to fail with a non-domain error,
	// simulating an infrastructure failure inside the transaction.
	failUserCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:           make(map[uuid.UUID]*entity.User),
		todos:           make(map[uuid.UUID]*entity.Todo),
		owners:          make(map[uuid.UUID]uuid.UUID),
		failSetPosition: make(map[uuid.UUID]bool),
	}
}

type storeSnapshot struct {
	users  map[uuid.UUID]*entity.User
	todos  map[uuid.UUID]*entity.Todo
	owners map[uuid.UUID]uuid.UUID
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := storeSnapshot{
		users:  make(map[uuid.UUID]*entity.User, len(s.users)),
		todos:  make(map[uuid.UUID]*entity.Todo, len(s.todos)),
		owners: make(map[uuid.UUID]uuid.UUID, len(s.owners)),
	}
	for id, u := range s.users {
		copied := *u
		snap.users[id] = &copied
	}
	for id, td := range s.todos {
		copied := *td
		snap.todos[id] = &copied
	}
	for todoID, userID := range s.owners {
		snap.owners[todoID] = userID
	}

	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.todos = snap.todos
	s.owners = snap.owners
}

// --- fake user repository ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.failUserCreate {
		return errors.New("connection reset")
	}

	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return errors.WithStack(domainerrors.ErrUsernameTaken)
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.store.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Username == username {
			copied := *user

			return &copied, nil
		}
	}

	return nil, errors.WithStack(repository.ErrUserNotFound)
}

func (r *fakeUserRepo) FindByRefreshTokenHash(_ context.Context, tokenHash string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.RefreshTokenHash != nil && *user.RefreshTokenHash == tokenHash {
			copied := *user

			return &copied, nil
		}
	}

	return nil, errors.WithStack(repository.ErrUserNotFound)
}

func (r *fakeUserRepo) SetRefreshTokenHash(_ context.Context, userID uuid.UUID, tokenHash *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userID]
	if !ok {
		return errors.WithStack(repository.ErrUserNotFound)
	}
	user.RefreshTokenHash = tokenHash
	user.UpdatedAt = time.Now()

	return nil
}

// --- fake todo repository ---

type fakeTodoRepo struct {
	store *fakeStore
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *entity.Todo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	todo.ID = uuid.New()
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	copied := *todo
	r.store.todos[todo.ID] = &copied

	return nil
}

func (r *fakeTodoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	todo, ok := r.store.todos[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrTodoNotFound)
	}
	copied := *todo

	return &copied, nil
}

func (r *fakeTodoRepo) ListByOwner(_ context.Context, userID uuid.UUID) ([]*entity.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var todos []*entity.Todo
	for todoID, ownerID := range r.store.owners {
		if ownerID != userID {
			continue
		}
		if todo, ok := r.store.todos[todoID]; ok {
			copied := *todo
			todos = append(todos, &copied)
		}
	}

	sort.Slice(todos, func(i, j int) bool {
		if todos[i].Position != todos[j].Position {
			return todos[i].Position < todos[j].Position
		}

		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})

	return todos, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, id uuid.UUID, changes entity.TodoChanges) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	todo, ok := r.store.todos[id]
	if !ok {
		return errors.WithStack(repository.ErrTodoNotFound)
	}
	if changes.Description != nil {
		todo.Description = *changes.Description
	}
	if changes.Completed != nil {
		todo.Completed = *changes.Completed
	}
	todo.UpdatedAt = time.Now()

	return nil
}

func (r *fakeTodoRepo) SetPosition(_ context.Context, id uuid.UUID, position int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.failSetPosition[id] {
		return errors.New("simulated position update failure")
	}

	todo, ok := r.store.todos[id]
	if !ok {
		return errors.WithStack(repository.ErrTodoNotFound)
	}
	todo.Position = position
	todo.UpdatedAt = time.Now()

	return nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.todos[id]; !ok {
		return errors.WithStack(repository.ErrTodoNotFound)
	}
	delete(r.store.todos, id)

	return nil
}

// --- fake ownership repository ---

type fakeOwnershipRepo struct {
	store *fakeStore
}

func (r *fakeOwnershipRepo) Create(_ context.Context, userID, todoID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.owners[todoID]; ok {
		return errors.New("todo is already owned")
	}
	r.store.owners[todoID] = userID

	return nil
}

func (r *fakeOwnershipRepo) Exists(_ context.Context, userID, todoID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ownerID, ok := r.store.owners[todoID]

	return ok && ownerID == userID, nil
}

func (r *fakeOwnershipRepo) CountOwned(_ context.Context, userID uuid.UUID, todoIDs []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, todoID := range todoIDs {
		if ownerID, ok := r.store.owners[todoID]; ok && ownerID == userID {
			count++
		}
	}

	return count, nil
}

func (r *fakeOwnershipRepo) DeleteByTodoID(_ context.Context, todoID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.owners, todoID)

	return nil
}

// --- fake transaction manager ---

// fakeTxManager simulates transactional semantics over the fake store: the
// store is snapshotted before the callback and restored if it fails, so
// partially applied writes roll back the way a real transaction would.
type fakeTxManager struct {
	store *fakeStore
}

type fakeRepoFactory struct {
	store *fakeStore
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeRepoFactory) TodoRepo() repository.TodoRepository {
	return &fakeTodoRepo{store: f.store}
}

func (f *fakeRepoFactory) OwnershipRepo() repository.OwnershipRepository {
	return &fakeOwnershipRepo{store: f.store}
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snap := tm.store.snapshot()

	if err := fn(&fakeRepoFactory{store: tm.store}); err != nil {
		tm.store.restore(snap)

		return err
	}

	return nil
}
