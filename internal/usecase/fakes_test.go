package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/repository"
	"github.com/fadilmartias/review-composer/internal/service"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*model.ReviewTask
	clock time.Time
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[uuid.UUID]*model.ReviewTask{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func cloneTask(t *model.ReviewTask) *model.ReviewTask {
	c := *t
	if t.Output != nil {
		o := *t.Output
		c.Output = &o
	}
	return &c
}

func (s *fakeTaskStore) Create(_ context.Context, task *model.ReviewTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Output == nil {
		task.Output = &model.ReviewOutput{}
	}
	task.Output.ReviewTaskID = task.ID
	s.clock = s.clock.Add(time.Minute)
	task.CreatedAt = s.clock
	task.UpdatedAt = s.clock
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *fakeTaskStore) FindByID(_ context.Context, userID, id uuid.UUID) (*model.ReviewTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *fakeTaskStore) List(_ context.Context, userID uuid.UUID, offset, limit int) ([]model.ReviewTask, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.ReviewTask
	for _, t := range s.tasks {
		if t.UserID == userID {
			all = append(all, *cloneTask(t))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeTaskStore) CountByStatus(_ context.Context, userID uuid.UUID) (map[verdict.TaskStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[verdict.TaskStatus]int64{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			out[t.Status]++
		}
	}
	return out, nil
}

func (s *fakeTaskStore) UpdateLocked(_ context.Context, userID, id uuid.UUID, fn func(task *model.ReviewTask) error) (*model.ReviewTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	working := cloneTask(t)
	if err := fn(working); err != nil {
		return nil, err
	}
	s.tasks[id] = cloneTask(working)
	return working, nil
}

func (s *fakeTaskStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *fakeTaskStore) put(t *model.ReviewTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = cloneTask(t)
}

type fakePolicyStore struct {
	policies map[uuid.UUID]*model.EvaluationPolicy
}

func newFakePolicyStore() *fakePolicyStore {
	return &fakePolicyStore{policies: map[uuid.UUID]*model.EvaluationPolicy{}}
}

func (s *fakePolicyStore) List(_ context.Context, userID uuid.UUID) ([]model.EvaluationPolicy, error) {
	var out []model.EvaluationPolicy
	for _, p := range s.policies {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePolicyStore) FindByID(_ context.Context, userID, id uuid.UUID) (*model.EvaluationPolicy, error) {
	p, ok := s.policies[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *fakePolicyStore) Create(_ context.Context, p *model.EvaluationPolicy) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	c := *p
	s.policies[p.ID] = &c
	return nil
}

func (s *fakePolicyStore) Update(_ context.Context, p *model.EvaluationPolicy) error {
	existing, ok := s.policies[p.ID]
	if !ok || existing.UserID != p.UserID {
		return repository.ErrNotFound
	}
	existing.Title = p.Title
	existing.PolicyText = p.PolicyText
	return nil
}

func (s *fakePolicyStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	p, ok := s.policies[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.policies, id)
	return nil
}

type fakeAssignmentStore struct {
	items map[uuid.UUID]*model.Assignment
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{items: map[uuid.UUID]*model.Assignment{}}
}

func (s *fakeAssignmentStore) List(_ context.Context) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range s.items {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *fakeAssignmentStore) FindByID(_ context.Context, id uuid.UUID) (*model.Assignment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (s *fakeAssignmentStore) FindByCode(_ context.Context, code string) (*model.Assignment, error) {
	for _, a := range s.items {
		if a.Code == code {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeAssignmentStore) Create(_ context.Context, a *model.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	c := *a
	s.items[a.ID] = &c
	return nil
}

type fakeEmbeddingStore struct {
	mu      sync.Mutex
	stored  map[uuid.UUID]*model.ReviewEmbedding
	results []model.ReviewTask
	queried pgvector.Vector
}

func newFakeEmbeddingStore() *fakeEmbeddingStore {
	return &fakeEmbeddingStore{stored: map[uuid.UUID]*model.ReviewEmbedding{}}
}

func (s *fakeEmbeddingStore) Upsert(_ context.Context, e *model.ReviewEmbedding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.stored[e.ReviewTaskID] = &c
	return nil
}

func (s *fakeEmbeddingStore) FindByTaskID(_ context.Context, taskID uuid.UUID) (*model.ReviewEmbedding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.stored[taskID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (s *fakeEmbeddingStore) SearchSimilar(_ context.Context, _, _ uuid.UUID, embedding pgvector.Vector, topK int) ([]model.ReviewTask, error) {
	s.queried = embedding
	if len(s.results) > topK {
		return s.results[:topK], nil
	}
	return s.results, nil
}

type fakeDrafter struct {
	raw   string
	err   error
	calls int
	last  service.DraftRequest
}

func (d *fakeDrafter) Draft(_ context.Context, req service.DraftRequest) (string, error) {
	d.calls++
	d.last = req
	return d.raw, d.err
}

type fakeEmbedder struct {
	values []float32
	err    error
	calls  int
}

func (e *fakeEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	e.calls++
	return e.values, e.err
}

type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = uuid.New()
	c := *u
	s.users[u.Email] = &c
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID uuid.UUID) (string, time.Time, error) {
	return "token-" + userID.String(), time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (e fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	return e.text, e.err
}
