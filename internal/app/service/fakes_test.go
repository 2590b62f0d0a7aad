package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"taskhub/internal/common"
	"taskhub/internal/domain/model"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	order []string // insertion order, oldest first
	tasks map[string]*model.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]*model.Task{}}
}

func (r *memTaskRepo) Create(ctx context.Context, t *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.tasks[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memTaskRepo) FindByID(ctx context.Context, id string) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	cp.Owner = &model.UserSummary{ID: t.OwnerID}
	return &cp, nil
}

func (r *memTaskRepo) Update(ctx context.Context, t *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[t.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.DueDate = t.DueDate
	stored.Status = t.Status
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	for i, tid := range r.order {
		if tid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memTaskRepo) List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.Task, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []model.Task{}
	// Newest first, matching the repository's created_at DESC ordering.
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tasks[r.order[i]]
		if filter.OwnerID != "" && t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(t.Status, filter.Status) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		cp := *t
		cp.Owner = &model.UserSummary{ID: t.OwnerID}
		matched = append(matched, cp)
	}

	total := len(matched)
	if offset >= total {
		return []model.Task{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

type fakeThrottle struct {
	mu       sync.Mutex
	failures map[string]int
	max      int
}

func newFakeThrottle(max int) *fakeThrottle {
	return &fakeThrottle{failures: map[string]int{}, max: max}
}

func (t *fakeThrottle) Allow(ctx context.Context, email string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures[email] < t.max, nil
}

func (t *fakeThrottle) RecordFailure(ctx context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[email]++
	return nil
}

func (t *fakeThrottle) Reset(ctx context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, email)
	return nil
}
